package boundary

import "github.com/UnknownOlympus/seawatch/internal/models"

// Coastline names used by the default geofence.
const (
	CoastTamilNadu = "tamil_nadu_points"
	CoastSriLanka  = "sri_lanka_points"
)

// PalkStraitOptions is the Tamil Nadu / Sri Lanka maritime region: a simplified
// international boundary line, both coastlines for display, and a 12 km safe margin.
func PalkStraitOptions() Options {
	return Options{
		Boundary: []models.Coordinate{
			{Latitude: 10.0500, Longitude: 80.0300},
			{Latitude: 9.5000, Longitude: 79.9000},
			{Latitude: 9.2200, Longitude: 79.8000},
			{Latitude: 8.9000, Longitude: 79.7000},
			{Latitude: 8.2000, Longitude: 79.3500},
		},
		SafeDistanceKm: DefaultSafeDistanceKm,
		MapCenter:      models.Coordinate{Latitude: 9.0000, Longitude: 79.8000},
		ZoomLevel:      7,
		Coastlines: map[string][]models.Coordinate{
			CoastTamilNadu: {
				{Latitude: 13.6288, Longitude: 80.1931}, // Chennai North
				{Latitude: 13.0827, Longitude: 80.2707}, // Chennai
				{Latitude: 12.6195, Longitude: 80.1952}, // Mahabalipuram
				{Latitude: 11.9314, Longitude: 79.8333}, // Pondicherry
				{Latitude: 11.4273, Longitude: 79.7662}, // Cuddalore
				{Latitude: 10.7870, Longitude: 79.8380}, // Karaikal
				{Latitude: 10.3833, Longitude: 79.8500}, // Nagapattinam
				{Latitude: 9.2800, Longitude: 79.3100},  // Rameswaram
				{Latitude: 8.7642, Longitude: 78.1348},  // Tuticorin
			},
			CoastSriLanka: {
				{Latitude: 9.8152, Longitude: 80.0299}, // Point Pedro
				{Latitude: 9.6700, Longitude: 80.2500}, // Mullaitivu
				{Latitude: 8.9500, Longitude: 81.0000}, // Trincomalee
				{Latitude: 8.3400, Longitude: 81.3300}, // Batticaloa
				{Latitude: 7.2800, Longitude: 81.6700}, // Pottuvil
			},
		},
	}
}
