package scene

import (
	"encoding/json"

	"github.com/matzehuels/circuitdraw/pkg/geom"
)

// MarshalJSON tags the component with its item type.
func (c *Component) MarshalJSON() ([]byte, error) {
	type alias Component
	return json.Marshal(struct {
		Type ItemKind `json:"type"`
		*alias
	}{KindComponent, (*alias)(c)})
}

// MarshalJSON tags the junction with its item type.
func (j *Junction) MarshalJSON() ([]byte, error) {
	type alias Junction
	return json.Marshal(struct {
		Type ItemKind `json:"type"`
		*alias
	}{KindJunction, (*alias)(j)})
}

// MarshalJSON tags the wire with its item type.
func (w *Wire) MarshalJSON() ([]byte, error) {
	type alias Wire
	return json.Marshal(struct {
		Type ItemKind `json:"type"`
		*alias
	}{KindWire, (*alias)(w)})
}

type sceneJSON struct {
	ID           string    `json:"id"`
	Unit         float64   `json:"unit"`
	Bounds       *geom.Box `json:"bounds,omitempty"`
	Stats        Stats     `json:"stats"`
	LeakedPushes int       `json:"leaked_pushes,omitempty"`
	Items        []Item    `json:"items"`
}

// MarshalJSON exports the scene with its bounds and item counts.
func (s *Scene) MarshalJSON() ([]byte, error) {
	out := sceneJSON{
		ID:           s.ID,
		Unit:         s.Unit,
		Stats:        s.Stats(),
		LeakedPushes: s.LeakedPushes,
		Items:        s.Items,
	}
	if out.Items == nil {
		out.Items = []Item{}
	}
	if b := s.Bounds(); !b.IsEmpty() {
		out.Bounds = &b
	}
	return json.Marshal(out)
}
