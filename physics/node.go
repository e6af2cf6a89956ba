package physics

// DefaultMaxSpeed caps the displacement a node may take in a single step.
const DefaultMaxSpeed = 300.0

// Node is a point mass owned by a Graph.
type Node struct {
	position Vec2
	maxSpeed float64
}

// NewNode creates a node at pos with the default speed cap.
func NewNode(pos Vec2) Node {
	return Node{position: pos, maxSpeed: DefaultMaxSpeed}
}

// NewNodeWithMaxSpeed creates a node at pos with a custom speed cap.
// A non-positive speed falls back to DefaultMaxSpeed.
func NewNodeWithMaxSpeed(pos Vec2, maxSpeed float64) Node {
	if maxSpeed <= 0 {
		maxSpeed = DefaultMaxSpeed
	}
	return Node{position: pos, maxSpeed: maxSpeed}
}

// Position returns the current position of the node.
func (n *Node) Position() Vec2 {
	return n.position
}

// SetPosition overwrites the node position. The caller is responsible for
// passing a finite vector.
func (n *Node) SetPosition(p Vec2) {
	n.position = p
}

// MaxSpeed returns the per-step displacement cap.
func (n *Node) MaxSpeed() float64 {
	return n.maxSpeed
}

// ApplyForces sums forces into a velocity, clamps its magnitude to the
// node's max speed and moves the node by it. The applied displacement is
// returned; it is the zero vector when forces is empty or cancels out.
func (n *Node) ApplyForces(forces []Vec2) Vec2 {
	if len(forces) == 0 {
		return Vec2{}
	}

	var velocity Vec2
	for _, f := range forces {
		velocity = velocity.Add(f)
	}

	speed := velocity.Len()
	if speed == 0 {
		return Vec2{}
	}
	if speed > n.maxSpeed {
		velocity = velocity.Scale(n.maxSpeed / speed)
	}

	n.position = n.position.Add(velocity)
	return velocity
}
