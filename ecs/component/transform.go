package component

import "github.com/milk9111/tandem/party"

type Transform struct {
	X        float64
	Y        float64
	Rotation float64
}

// Pose converts the transform to a party pose.
func (t *Transform) Pose() party.Pose {
	if t == nil {
		return party.Pose{}
	}
	return party.Pose{X: t.X, Y: t.Y, Angle: t.Rotation}
}

var TransformComponent = NewComponent[Transform]()
