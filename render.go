package entforge

import (
	"fmt"
	"io"
	"strings"
)

// Render renders the template against ctx and returns the output text.
// Rendering is a single pass over the node tree with no side effects; the
// same Template may be rendered concurrently with different contexts.
func (t *Template) Render(ctx Context) (string, error) {
	var b strings.Builder
	if err := renderNodes(&b, t.nodes, rootScope(ctx)); err != nil {
		if t.name != "" {
			return "", fmt.Errorf("[%s] %w", t.name, err)
		}
		return "", err
	}
	return b.String(), nil
}

// Execute renders the template against ctx into w. On error the writer may
// have received a partial prefix of the output.
func (t *Template) Execute(w io.Writer, ctx Context) error {
	out, err := t.Render(ctx)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

func renderNodes(b *strings.Builder, nodes []Node, sc *scope) error {
	for _, n := range nodes {
		switch node := n.(type) {
		case LiteralNode:
			b.WriteString(node.Text)
		case InterpNode:
			v, err := evalInScope(node.Expr, sc)
			if err != nil {
				return err
			}
			s, err := stringify(v)
			if err != nil {
				return fmt.Errorf("%w: %q", err, node.Expr)
			}
			b.WriteString(s)
		case CondNode:
			v, err := evalInScope(node.Guard, sc)
			if err != nil {
				return err
			}
			branch := node.Else
			if truthy(v) {
				branch = node.Then
			}
			if err := renderNodes(b, branch, sc); err != nil {
				return err
			}
		case LoopNode:
			if err := renderLoop(b, node, sc); err != nil {
				return err
			}
		default:
			return fmt.Errorf("entforge: unknown node type %T", n)
		}
	}
	return nil
}

func renderLoop(b *strings.Builder, loop LoopNode, sc *scope) error {
	v, err := evalInScope(loop.Expr, sc)
	if err != nil {
		return err
	}
	list, ok := asList(v)
	if !ok {
		return fmt.Errorf("%w: %q is %T", ErrNotIterable, loop.Expr, v)
	}
	for _, item := range list {
		// a fresh child scope per element keeps iteration state local
		if err := renderNodes(b, loop.Body, sc.child(loop.Var, item)); err != nil {
			return err
		}
	}
	return nil
}
