package physics

// NodeID is a stable handle to a node inside its Graph. Handles are 0-based
// and assigned in insertion order.
type NodeID int

// Link is an undirected edge between two nodes of the same Graph. The order
// of the endpoints fixes the sign of the attraction force.
type Link struct {
	first, second NodeID
}

// NewLink creates a link between a and b.
func NewLink(a, b NodeID) Link {
	return Link{first: a, second: b}
}

// First returns the endpoint that receives the negated attraction.
func (l Link) First() NodeID {
	return l.first
}

// Second returns the endpoint that receives the attraction.
func (l Link) Second() NodeID {
	return l.second
}
