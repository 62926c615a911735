package grove

import (
	"fmt"
	"strings"

	"github.com/tanema/gween/ease"
)

// Property selects which transform vector a tween animates.
type Property uint8

const (
	PropPosition Property = iota
	PropRotation
	PropScale
)

var propertyNames = [...]string{"position", "rotation", "scale"}

func (p Property) String() string {
	if int(p) >= len(propertyNames) {
		return "unknown"
	}
	return propertyNames[p]
}

// Axis selects one component of a transform vector, or all three.
type Axis uint8

const (
	AxisAll Axis = iota
	AxisX
	AxisY
	AxisZ
)

// Path names a tweenable property: a whole vector ("position") or a single
// component ("position.z").
type Path struct {
	Property Property
	Axis     Axis
}

// Common paths.
var (
	Position  = Path{PropPosition, AxisAll}
	PositionX = Path{PropPosition, AxisX}
	PositionY = Path{PropPosition, AxisY}
	PositionZ = Path{PropPosition, AxisZ}
	Rotation  = Path{PropRotation, AxisAll}
	RotationX = Path{PropRotation, AxisX}
	RotationY = Path{PropRotation, AxisY}
	RotationZ = Path{PropRotation, AxisZ}
	Scale     = Path{PropScale, AxisAll}
)

func (p Path) String() string {
	switch p.Axis {
	case AxisX:
		return p.Property.String() + ".x"
	case AxisY:
		return p.Property.String() + ".y"
	case AxisZ:
		return p.Property.String() + ".z"
	}
	return p.Property.String()
}

// components returns the vector indices the path covers.
func (p Path) components() []int {
	switch p.Axis {
	case AxisX:
		return []int{0}
	case AxisY:
		return []int{1}
	case AxisZ:
		return []int{2}
	}
	return []int{0, 1, 2}
}

// ParsePath parses "position", "rotation.y", "scale.x" and so on.
func ParsePath(s string) (Path, error) {
	prop, axis, _ := strings.Cut(strings.ToLower(strings.TrimSpace(s)), ".")
	var p Path
	switch prop {
	case "position":
		p.Property = PropPosition
	case "rotation":
		p.Property = PropRotation
	case "scale":
		p.Property = PropScale
	default:
		return Path{}, fmt.Errorf("parse path %q: unknown property", s)
	}
	switch axis {
	case "":
		p.Axis = AxisAll
	case "x":
		p.Axis = AxisX
	case "y":
		p.Axis = AxisY
	case "z":
		p.Axis = AxisZ
	default:
		return Path{}, fmt.Errorf("parse path %q: unknown axis", s)
	}
	return p, nil
}

// --- Easing tags ---

var easings = map[string]ease.TweenFunc{
	"linear":      ease.Linear,
	"inQuad":      ease.InQuad,
	"outQuad":     ease.OutQuad,
	"inOutQuad":   ease.InOutQuad,
	"inCubic":     ease.InCubic,
	"outCubic":    ease.OutCubic,
	"inOutCubic":  ease.InOutCubic,
	"inSine":      ease.InSine,
	"outSine":     ease.OutSine,
	"inOutSine":   ease.InOutSine,
	"inExpo":      ease.InExpo,
	"outExpo":     ease.OutExpo,
	"inOutExpo":   ease.InOutExpo,
	"inBack":      ease.InBack,
	"outBack":     ease.OutBack,
	"inOutBack":   ease.InOutBack,
	"outElastic":  ease.OutElastic,
	"inBounce":    ease.InBounce,
	"outBounce":   ease.OutBounce,
	"inOutBounce": ease.InOutBounce,
}

// Easing resolves an easing tag such as "linear" or "outBounce". Lookup is
// case-insensitive.
func Easing(name string) (ease.TweenFunc, bool) {
	if fn, ok := easings[name]; ok {
		return fn, true
	}
	for k, fn := range easings {
		if strings.EqualFold(k, name) {
			return fn, true
		}
	}
	return nil, false
}
