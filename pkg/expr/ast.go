package expr

// Node is the interface for all expression tree nodes. A tree is immutable
// after construction, owns its children exclusively, and holds no reference
// to any Configuration: the same tree can be evaluated repeatedly against
// different configurations without re-parsing.
type Node interface {
	nodeType() string
}

// LiteralNode represents a literal value (int, float, string, bool).
type LiteralNode struct {
	TokenType TokenType
	IntVal    int64
	FloatVal  float64
	StrVal    string
	BoolVal   bool
}

func (n *LiteralNode) nodeType() string { return "Literal" }

// IdentNode represents a variable reference.
type IdentNode struct {
	Name string
}

func (n *IdentNode) nodeType() string { return "Ident" }

// BinaryNode represents a binary operation (e.g., a + b, x == y, a && b).
type BinaryNode struct {
	Op    TokenType
	Left  Node
	Right Node
}

func (n *BinaryNode) nodeType() string { return "Binary" }

// UnaryNode represents a unary operation (-x or !x).
type UnaryNode struct {
	Op      TokenType
	Operand Node
}

func (n *UnaryNode) nodeType() string { return "Unary" }

// PropertyNode represents member access (obj.field).
type PropertyNode struct {
	Object   Node
	Property string
}

func (n *PropertyNode) nodeType() string { return "Property" }

// IndexNode represents index access (arr[expr]).
type IndexNode struct {
	Object Node
	Index  Node
}

func (n *IndexNode) nodeType() string { return "Index" }

// CallNode represents a function call by name, from either surface form:
// name(a, b, ...) or the one-argument juxtaposition form `name arg`.
type CallNode struct {
	Name string
	Args []Node
}

func (n *CallNode) nodeType() string { return "Call" }

// ListNode represents the array-literal form array(e1, e2, ...).
type ListNode struct {
	Elements []Node
}

func (n *ListNode) nodeType() string { return "List" }

// RangeNode represents a..b. Materialization into an array is deferred to
// evaluation.
type RangeNode struct {
	Low  Node
	High Node
}

func (n *RangeNode) nodeType() string { return "Range" }
