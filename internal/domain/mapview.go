package domain

// Camera and column-layer defaults for the 3D map. The camera sits at the
// mean coordinate of the selected city's mappable records, tilted so column
// heights read as buildings rather than dots.
const (
	mapZoom           = 12
	mapPitch          = 50
	mapElevationScale = 5
	mapRadius         = 100
)

// mapFillColor is the column fill as RGBA, matching the dashboard accent.
var mapFillColor = [4]int{161, 137, 114, 200}

// CameraView positions the map camera over the selected city.
type CameraView struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Zoom      int     `json:"zoom"`
	Pitch     int     `json:"pitch"`
}

// ColumnLayer carries the rendering constants for the extruded columns.
type ColumnLayer struct {
	ElevationScale int    `json:"elevation_scale"`
	Radius         int    `json:"radius"`
	FillColor      [4]int `json:"fill_color"`
}

// MapColumn is one extruded column: a single skyscraper with usable
// coordinates. Height is the rounded display height, which doubles as the
// column elevation.
type MapColumn struct {
	Name      string  `json:"name"`
	City      string  `json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Height    int     `json:"height"`
}

// MapPayload is everything the map view needs for one city: the city picker
// options, the camera, the layer constants, and the columns. When the view
// cannot be drawn, Available is false and Message says why.
type MapPayload struct {
	Available bool        `json:"available"`
	Message   string      `json:"message,omitempty"`
	Cities    []string    `json:"cities,omitempty"`
	Selected  string      `json:"selected,omitempty"`
	View      CameraView  `json:"view"`
	Layer     ColumnLayer `json:"layer"`
	Columns   []MapColumn `json:"columns,omitempty"`
}

// MapView builds the map payload for one city out of the filtered subset.
// The city picker lists every city in the subset in first-encountered order.
// An unknown or empty requestedCity falls back to the first city. Records
// without coordinates are left out of both the camera average and the
// columns; if the whole selection lacks coordinates the payload is marked
// unavailable rather than centering the camera on the zero coordinate.
func MapView(records []Skyscraper, hasCoordinateColumns bool, requestedCity string) MapPayload {
	if !hasCoordinateColumns {
		return MapPayload{Message: "dataset has no coordinate columns"}
	}
	if len(records) == 0 {
		return MapPayload{Message: "no records match the current filters"}
	}

	cities := uniqueCities(records)
	selected := cities[0]
	for _, c := range cities {
		if c == requestedCity {
			selected = c
			break
		}
	}

	var (
		columns  []MapColumn
		sumLat   float64
		sumLon   float64
		mappable int
	)
	for _, r := range records {
		if r.City != selected || !r.HasCoordinates() {
			continue
		}
		columns = append(columns, MapColumn{
			Name:      r.Name,
			City:      r.City,
			Latitude:  *r.Latitude,
			Longitude: *r.Longitude,
			Height:    r.DisplayHeight(),
		})
		sumLat += *r.Latitude
		sumLon += *r.Longitude
		mappable++
	}
	if mappable == 0 {
		return MapPayload{
			Message:  "no mappable records for the selected city",
			Cities:   cities,
			Selected: selected,
		}
	}

	return MapPayload{
		Available: true,
		Cities:    cities,
		Selected:  selected,
		View: CameraView{
			Latitude:  sumLat / float64(mappable),
			Longitude: sumLon / float64(mappable),
			Zoom:      mapZoom,
			Pitch:     mapPitch,
		},
		Layer: ColumnLayer{
			ElevationScale: mapElevationScale,
			Radius:         mapRadius,
			FillColor:      mapFillColor,
		},
		Columns: columns,
	}
}
