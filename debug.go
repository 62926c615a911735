package grove

import "time"

// frameStats holds per-frame timing and counts.
// Only populated when Stage.debug is true.
type frameStats struct {
	inputTime    time.Duration
	tweenTime    time.Duration
	renderTime   time.Duration
	commandCount int
	moveCount    int
	objectCount  int
	tweenCount   int
}

// debugMaxObjects is the registry size above which debug mode warns once per
// crossing.
const debugMaxObjects = 50000

// debugLog emits frame stats through Logger at debug level.
func (s *Stage) debugLog(stats frameStats) {
	if !s.debug {
		return
	}
	total := stats.inputTime + stats.tweenTime + stats.renderTime
	Logger().Debug("frame",
		"frame", s.frame,
		"input", stats.inputTime,
		"tween", stats.tweenTime,
		"render", stats.renderTime,
		"total", total,
		"commands", stats.commandCount,
		"moves", stats.moveCount,
		"objects", stats.objectCount,
		"tweens", stats.tweenCount,
	)
	debugCheckObjectCount(stats.objectCount, s.lastObjectCount)
	s.lastObjectCount = stats.objectCount
}

// debugCheckObjectCount warns when the registry grows past debugMaxObjects.
func debugCheckObjectCount(n, prev int) {
	if n > debugMaxObjects && prev <= debugMaxObjects {
		Logger().Warn("object count exceeds threshold", "objects", n, "threshold", debugMaxObjects)
	}
}

// countSegments counts wireframe edges a DrawList would produce for reg,
// ignoring visibility and clipping. Used for debug overlays.
func countSegments(reg *Registry) int {
	n := 0
	reg.Each(func(obj *SceneObject) {
		if obj.Geometry != nil {
			n += len(obj.Geometry.Edges())
		}
	})
	return n
}
