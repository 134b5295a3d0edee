package model

import (
	"encoding/json"
	"fmt"
)

// PolygonVertex is one corner of an explicit polygon definition. A vertex
// with Round > 0 is replaced during resolution by a circular arc tangent to
// both adjacent edges.
//
// The wire encoding is a bare array: [x, y] for sharp corners and
// [x, y, r] for rounded ones.
type PolygonVertex struct {
	X     float64
	Y     float64
	Round float64
}

func (v PolygonVertex) MarshalJSON() ([]byte, error) {
	if v.Round > 0 {
		return json.Marshal([3]float64{v.X, v.Y, v.Round})
	}
	return json.Marshal([2]float64{v.X, v.Y})
}

func (v *PolygonVertex) UnmarshalJSON(data []byte) error {
	var arr []float64
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("%w: polygon vertex must be [x,y] or [x,y,r]", ErrMalformedDefinition)
	}
	switch len(arr) {
	case 2:
		*v = PolygonVertex{X: arr[0], Y: arr[1]}
	case 3:
		*v = PolygonVertex{X: arr[0], Y: arr[1], Round: arr[2]}
	default:
		return fmt.Errorf("%w: polygon vertex has %d components", ErrMalformedDefinition, len(arr))
	}
	return nil
}
