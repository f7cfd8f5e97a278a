package entforge

// Node is one element of a parsed template tree.
type Node interface {
	node()
}

// LiteralNode is a run of verbatim text.
type LiteralNode struct {
	Text string
}

// InterpNode is a {{ expression }} directive. The expression text is kept
// opaque here; the evaluator interprets it at render time.
type InterpNode struct {
	Expr string
}

// CondNode is a {% if %} ... {% else %} ... {% endif %} directive.
type CondNode struct {
	Guard string
	Then  []Node
	Else  []Node
}

// LoopNode is a {% for x in expr %} ... {% endfor %} directive.
type LoopNode struct {
	Var  string
	Expr string
	Body []Node
}

func (LiteralNode) node() {}
func (InterpNode) node()  {}
func (CondNode) node()    {}
func (LoopNode) node()    {}

// Template is an immutable parsed template. Once built it contains no
// unresolved directive markers and is safe to render concurrently.
type Template struct {
	name  string
	raw   string
	nodes []Node
}

// Name returns the template name ("" for anonymous templates parsed from a raw
// string).
func (t *Template) Name() string {
	return t.name
}

// Raw returns the source text the template was parsed from.
func (t *Template) Raw() string {
	return t.raw
}

// Nodes returns the root node sequence.
func (t *Template) Nodes() []Node {
	return t.nodes
}
