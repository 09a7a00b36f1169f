package geojson

import (
	"encoding/json"
	"fmt"
	"io"
)

// Feature keeps geometry as raw JSON so import can persist the payload
// verbatim and serving can echo stored payloads without re-encoding.
type Feature struct {
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties"`
	Geometry   json.RawMessage        `json:"geometry,omitempty"`
}

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

func NewFeatureCollection() *FeatureCollection {
	return &FeatureCollection{Type: "FeatureCollection", Features: make([]Feature, 0)}
}

// Geometry is the decoded shell of a GeoJSON geometry. Coordinates stay raw;
// their nesting depth varies by type and the callers that care walk them
// generically.
type Geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates,omitempty"`
	Geometries  []Geometry      `json:"geometries,omitempty"`
}

func (f *Feature) DecodeGeometry() (*Geometry, error) {
	if len(f.Geometry) == 0 || string(f.Geometry) == "null" {
		return nil, nil
	}
	var g Geometry
	if err := json.Unmarshal(f.Geometry, &g); err != nil {
		return nil, fmt.Errorf("decode geometry: %w", err)
	}
	return &g, nil
}

var geometryTypes = map[string]bool{
	"Point":              true,
	"MultiPoint":         true,
	"LineString":         true,
	"MultiLineString":    true,
	"Polygon":            true,
	"MultiPolygon":       true,
	"GeometryCollection": true,
}

func (g *Geometry) Valid() bool {
	if g == nil || !geometryTypes[g.Type] {
		return false
	}
	if g.Type == "GeometryCollection" {
		return len(g.Geometries) > 0
	}
	return len(g.Coordinates) > 0
}

// StringProp returns the first non-empty string value among the given
// property keys.
func (f *Feature) StringProp(keys ...string) string {
	for _, key := range keys {
		if v, ok := f.Properties[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// Centroid averages every coordinate tuple reachable in the geometry,
// regardless of geometry kind. Returns ok=false when no positions exist.
func (g *Geometry) Centroid() (lat, lng float64, ok bool) {
	var sumLat, sumLng float64
	var n int
	g.accumulate(&sumLat, &sumLng, &n)
	if n == 0 {
		return 0, 0, false
	}
	return sumLat / float64(n), sumLng / float64(n), true
}

func (g *Geometry) accumulate(sumLat, sumLng *float64, n *int) {
	if g == nil {
		return
	}
	for i := range g.Geometries {
		g.Geometries[i].accumulate(sumLat, sumLng, n)
	}
	if len(g.Coordinates) == 0 {
		return
	}
	var node interface{}
	if err := json.Unmarshal(g.Coordinates, &node); err != nil {
		return
	}
	walkPositions(node, sumLat, sumLng, n)
}

func walkPositions(node interface{}, sumLat, sumLng *float64, n *int) {
	arr, ok := node.([]interface{})
	if !ok || len(arr) == 0 {
		return
	}
	// A position is a flat [lng, lat, ...] tuple of numbers.
	if lng, ok := arr[0].(float64); ok {
		if len(arr) >= 2 {
			if lat, ok := arr[1].(float64); ok {
				*sumLng += lng
				*sumLat += lat
				*n++
			}
		}
		return
	}
	for _, child := range arr {
		walkPositions(child, sumLat, sumLng, n)
	}
}

// EachFeature streams the features array of a FeatureCollection document one
// feature at a time, so a multi-hundred-MB source file never has to be held
// fully decoded in memory. Returning an error from fn aborts the scan.
func EachFeature(r io.Reader, fn func(f Feature) error) error {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected FeatureCollection object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("read key: %w", err)
		}
		key, _ := keyTok.(string)
		if key != "features" {
			if err := skipValue(dec); err != nil {
				return err
			}
			continue
		}

		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("read features: %w", err)
		}
		if delim, ok := tok.(json.Delim); !ok || delim != '[' {
			return fmt.Errorf("features is not an array")
		}
		for dec.More() {
			var f Feature
			if err := dec.Decode(&f); err != nil {
				return fmt.Errorf("decode feature: %w", err)
			}
			if err := fn(f); err != nil {
				return err
			}
		}
		if _, err := dec.Token(); err != nil {
			return fmt.Errorf("close features: %w", err)
		}
	}
	return nil
}

func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok || (delim != '{' && delim != '[') {
		return nil
	}
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}
