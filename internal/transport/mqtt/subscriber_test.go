package mqtt

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/UnknownOlympus/seawatch/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSubmitter struct {
	submitted []models.VesselPosition
	err       error
}

func (m *mockSubmitter) Submit(_ context.Context, position models.VesselPosition) error {
	m.submitted = append(m.submitted, position)
	return m.err
}

type fakeMQTTMessage struct {
	payload []byte
}

func (f *fakeMQTTMessage) Duplicate() bool   { return false }
func (f *fakeMQTTMessage) Qos() byte         { return 1 }
func (f *fakeMQTTMessage) Retained() bool    { return false }
func (f *fakeMQTTMessage) Topic() string     { return "seawatch/vessels/TN-04-MM-1234/position" }
func (f *fakeMQTTMessage) MessageID() uint16 { return 0 }
func (f *fakeMQTTMessage) Payload() []byte   { return f.payload }
func (f *fakeMQTTMessage) Ack()              {}

func newTestSubscriber(svc submitter) *PositionSubscriber {
	return NewPositionSubscriber(nil, "", svc, slog.Default())
}

func TestHandleMessage_Success(t *testing.T) {
	svc := &mockSubmitter{}
	sub := newTestSubscriber(svc)

	payload, err := json.Marshal(map[string]any{
		"vessel_id": "TN-04-MM-1234",
		"latitude":  9.28,
		"longitude": 79.31,
		"speed":     15.5,
		"direction": 180,
		"timestamp": 1715003456,
	})
	require.NoError(t, err)

	sub.handleMessage(nil, &fakeMQTTMessage{payload: payload})

	require.Len(t, svc.submitted, 1)
	position := svc.submitted[0]
	assert.Equal(t, "TN-04-MM-1234", position.VesselID)
	assert.Equal(t, models.Coordinate{Latitude: 9.28, Longitude: 79.31}, position.Reading.Position)
	assert.InDelta(t, 15.5, position.Reading.SpeedKnots, 0)
	assert.InDelta(t, 180, position.Reading.HeadingDegrees, 0)
	assert.True(t, position.ReportedAt.Equal(time.Unix(1715003456, 0)))
}

func TestHandleMessage_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"invalid json", `{"vessel_id":`},
		{"missing vessel", `{"latitude":9.28,"longitude":79.31}`},
		{"missing longitude", `{"vessel_id":"TN-1","latitude":9.28}`},
		{"latitude out of range", `{"vessel_id":"TN-1","latitude":91,"longitude":79.31}`},
		{"negative speed", `{"vessel_id":"TN-1","latitude":9.28,"longitude":79.31,"speed":-1}`},
		{"heading out of range", `{"vessel_id":"TN-1","latitude":9.28,"longitude":79.31,"direction":360}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockSubmitter{}
			sub := newTestSubscriber(svc)

			sub.handleMessage(nil, &fakeMQTTMessage{payload: []byte(tt.payload)})

			assert.Empty(t, svc.submitted)
		})
	}
}

func TestDecodePosition(t *testing.T) {
	t.Run("zero timestamp leaves reported time unset", func(t *testing.T) {
		position, err := decodePosition([]byte(`{"vessel_id":"TN-1","latitude":0,"longitude":0}`))

		require.NoError(t, err)
		assert.True(t, position.ReportedAt.IsZero())
	})

	t.Run("missing coordinates wrap the coordinate error", func(t *testing.T) {
		_, err := decodePosition([]byte(`{"vessel_id":"TN-1"}`))

		require.ErrorIs(t, err, models.ErrInvalidCoordinate)
	})

	t.Run("missing vessel", func(t *testing.T) {
		_, err := decodePosition([]byte(`{"latitude":1,"longitude":1}`))

		require.ErrorIs(t, err, errMissingVessel)
	})
}

func TestHandleMessage_SubmitFailure(t *testing.T) {
	svc := &mockSubmitter{err: context.Canceled}
	sub := newTestSubscriber(svc)

	sub.handleMessage(nil, &fakeMQTTMessage{
		payload: []byte(`{"vessel_id":"TN-1","latitude":9.28,"longitude":79.31}`),
	})

	assert.Len(t, svc.submitted, 1)
}
