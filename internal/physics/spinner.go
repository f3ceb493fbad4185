package physics

import (
	"math"

	"github.com/san-kum/maxwell/internal/dynamo"
)

// MaxDepth is the deepest spinner nesting BuildTree accepts.
const MaxDepth = 3

// Node is one rotating element of the spinner. Hubs have zero arm length;
// arms carry an optional lobe at their tip.
type Node struct {
	AngleOffset   float64
	ArmLength     float64
	RotationSpeed float64
	Level         int
	Lobe          int // index into the scene's lobes, -1 for none
	Children      []int
}

// Transform is the absolute placement of a node. Anchor is the parent's
// position, so Anchor→Position is the drawn arm.
type Transform struct {
	Anchor   dynamo.Vec2
	Position dynamo.Vec2
	Rotation float64
}

// Tree stores nodes in a flat arena; node 0 is the root.
type Tree struct {
	Nodes []Node
}

// Add appends n as a child of parent (or as the root when parent < 0) and
// returns its index.
func (t *Tree) Add(parent int, n Node) int {
	idx := len(t.Nodes)
	t.Nodes = append(t.Nodes, n)
	if parent >= 0 {
		t.Nodes[parent].Children = append(t.Nodes[parent].Children, idx)
	}
	return idx
}

// Resolve computes the absolute transform of every node at time. A child's
// rotation is its parent's rotation plus its own offset and spin; its
// position is the parent's position plus the arm along that rotation.
// dst is reused when large enough.
func (t *Tree) Resolve(time float64, dst []Transform) []Transform {
	if cap(dst) < len(t.Nodes) {
		dst = make([]Transform, len(t.Nodes))
	}
	dst = dst[:len(t.Nodes)]
	if len(t.Nodes) == 0 {
		return dst
	}

	type frame struct {
		node   int
		anchor dynamo.Vec2
		rot    float64
	}
	stack := []frame{{node: 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &t.Nodes[f.node]
		rot := f.rot + n.AngleOffset + n.RotationSpeed*time
		pos := f.anchor.Add(dynamo.Polar(rot, n.ArmLength))
		dst[f.node] = Transform{Anchor: f.anchor, Position: pos, Rotation: rot}

		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: n.Children[i], anchor: pos, rot: rot})
		}
	}
	return dst
}

// Layout holds the structural constants of the spinner.
type Layout struct {
	Depth      int
	ArmLength  float64
	LobeRadius float64
	ChildScale float64
	SpinRate   float64
}

// LobeSpec describes a lobe created by BuildTree; its index matches the
// Node.Lobe value that points at it.
type LobeSpec struct {
	Arm    int
	Level  int
	Radius float64
}

// BuildTree creates the nested three-armed layout. Depth 0 gives three
// static lobes around the origin; depth d gives d spinning levels where
// every lobe short of the last level hosts a smaller child spinner.
func BuildTree(l Layout) (*Tree, []LobeSpec) {
	t := &Tree{}
	var lobes []LobeSpec

	root := t.Add(-1, Node{Lobe: -1})
	if l.Depth <= 0 {
		for arm := 0; arm < 3; arm++ {
			t.Add(root, Node{
				AngleOffset: armAngle(arm),
				ArmLength:   l.ArmLength,
				Lobe:        len(lobes),
			})
			lobes = append(lobes, LobeSpec{Arm: arm, Radius: l.LobeRadius})
		}
		return t, lobes
	}

	var grow func(hub, level int, armLen, radius float64)
	grow = func(hub, level int, armLen, radius float64) {
		t.Nodes[hub].RotationSpeed = l.SpinRate * (1 + float64(level)*0.3)
		t.Nodes[hub].Level = level
		for arm := 0; arm < 3; arm++ {
			tip := t.Add(hub, Node{
				AngleOffset: armAngle(arm),
				ArmLength:   armLen,
				Level:       level,
				Lobe:        len(lobes),
			})
			lobes = append(lobes, LobeSpec{Arm: arm, Level: level, Radius: radius})
			if level+1 < l.Depth {
				child := t.Add(tip, Node{Lobe: -1})
				grow(child, level+1, armLen*l.ChildScale, radius*l.ChildScale)
			}
		}
	}
	grow(root, 0, l.ArmLength, l.LobeRadius)
	return t, lobes
}

func armAngle(arm int) float64 {
	return float64(arm) * 2 * math.Pi / 3
}
