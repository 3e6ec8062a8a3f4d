package ast

// LoopLabel marks the orientation of the loop a point belongs to.
type LoopLabel uint32

const (
	LoopCounterClockwise LoopLabel = 0 // Outer loop
	LoopClockwise        LoopLabel = 1 // Cutout nested in the preceding outer loop
)

// String returns the IDF orientation name of the label.
func (l LoopLabel) String() string {
	switch l {
	case LoopCounterClockwise:
		return "CCW"
	case LoopClockwise:
		return "CW"
	default:
		return "UNKNOWN"
	}
}

// Point is one vertex of an outline loop.
//
// Angle 0 draws a straight segment to the next point, 0 < Angle < 360 an arc
// of that sweep, and 360 a full circle.
type Point struct {
	LoopLabel LoopLabel `json:"loop_label" yaml:"loop_label"`
	X         float32   `json:"x" yaml:"x"`
	Y         float32   `json:"y" yaml:"y"`
	Angle     float32   `json:"angle" yaml:"angle"`
}

// IsFullCircle reports whether the point closes a full circle.
func (p Point) IsFullCircle() bool {
	return p.Angle == 360
}

// SamePosition reports whether two points share coordinates.
func (p Point) SamePosition(o Point) bool {
	return p.X == o.X && p.Y == o.Y
}

// SplitLoops groups an ordered point sequence into loops. A new loop starts
// whenever the previous loop has closed (its last point returns to its first)
// or the loop label changes.
func SplitLoops(points []Point) [][]Point {
	var loops [][]Point
	start := 0
	for i := 1; i <= len(points); i++ {
		if i == len(points) {
			loops = append(loops, points[start:i])
			break
		}
		cur := points[start:i]
		closed := len(cur) > 1 && cur[0].SamePosition(cur[len(cur)-1])
		if points[i].LoopLabel != points[start].LoopLabel || closed || cur[len(cur)-1].IsFullCircle() {
			loops = append(loops, cur)
			start = i
		}
	}
	return loops
}
