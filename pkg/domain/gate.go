package domain

// GateKind tags a node of the gate tree.
type GateKind string

const (
	GateSingleton GateKind = "singleton"
	GateJoinLower GateKind = "join_lower"
	GateJoinUpper GateKind = "join_upper"
)

// Edge names the physical side of a join.
type Edge string

const (
	EdgeLower Edge = "lower"
	EdgeUpper Edge = "upper"
)

// Gate is a binary tree of segments. Leaves hold a segment; internal nodes
// fuse their children along the lower or upper edge.
type Gate struct {
	Kind    GateKind `json:"kind"`
	Segment *Segment `json:"segment,omitempty"`
	Left    *Gate    `json:"left,omitempty"`
	Right   *Gate    `json:"right,omitempty"`
}

// Singleton wraps a single segment.
func Singleton(seg Segment) *Gate {
	return &Gate{Kind: GateSingleton, Segment: &seg}
}

// JoinLower fuses two gates along the edge nearer the lower strand (":" in source).
func JoinLower(left, right *Gate) *Gate {
	return &Gate{Kind: GateJoinLower, Left: left, Right: right}
}

// JoinUpper fuses two gates along the edge nearer the upper strand ("::" in source).
func JoinUpper(left, right *Gate) *Gate {
	return &Gate{Kind: GateJoinUpper, Left: left, Right: right}
}

// Edge returns the fused edge of a join node, or "" for leaves.
func (g *Gate) Edge() Edge {
	switch g.Kind {
	case GateJoinLower:
		return EdgeLower
	case GateJoinUpper:
		return EdgeUpper
	}
	return ""
}

// Segments returns the leaves from left to right.
func (g *Gate) Segments() []Segment {
	var out []Segment
	stack := []*Gate{g}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == nil {
			continue
		}
		if n.Kind == GateSingleton {
			if n.Segment != nil {
				out = append(out, *n.Segment)
			}
			continue
		}
		stack = append(stack, n.Right, n.Left)
	}
	return out
}
