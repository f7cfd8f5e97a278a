package entforge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLiteralOnly(t *testing.T) {
	tmpl, err := Parse("plain text, no directives")
	require.NoError(t, err)
	require.Len(t, tmpl.Nodes(), 1)
	assert.Equal(t, LiteralNode{Text: "plain text, no directives"}, tmpl.Nodes()[0])
}

func TestParseInterpolation(t *testing.T) {
	tmpl, err := Parse("hello {{ name }}!")
	require.NoError(t, err)
	require.Len(t, tmpl.Nodes(), 3)
	assert.Equal(t, InterpNode{Expr: "name"}, tmpl.Nodes()[1])
}

func TestParseNestedConditionals(t *testing.T) {
	tmpl, err := Parse("{% if a %}{% if b %}X{% endif %}{% endif %}")
	require.NoError(t, err)
	require.Len(t, tmpl.Nodes(), 1)

	outer, ok := tmpl.Nodes()[0].(CondNode)
	require.True(t, ok)
	assert.Equal(t, "a", outer.Guard)
	require.Len(t, outer.Then, 1)

	inner, ok := outer.Then[0].(CondNode)
	require.True(t, ok)
	assert.Equal(t, "b", inner.Guard)
	assert.Equal(t, []Node{LiteralNode{Text: "X"}}, inner.Then)
}

func TestParseConditionalWithElse(t *testing.T) {
	tmpl, err := Parse("{% if ok %}yes{% else %}no{% endif %}")
	require.NoError(t, err)

	cond, ok := tmpl.Nodes()[0].(CondNode)
	require.True(t, ok)
	assert.Equal(t, []Node{LiteralNode{Text: "yes"}}, cond.Then)
	assert.Equal(t, []Node{LiteralNode{Text: "no"}}, cond.Else)
}

func TestParseLoop(t *testing.T) {
	tmpl, err := Parse("{% for p in products %}{{ p.name }},{% endfor %}")
	require.NoError(t, err)

	loop, ok := tmpl.Nodes()[0].(LoopNode)
	require.True(t, ok)
	assert.Equal(t, "p", loop.Var)
	assert.Equal(t, "products", loop.Expr)
	require.Len(t, loop.Body, 2)
}

func TestParseLoopOverFilteredExpression(t *testing.T) {
	tmpl, err := Parse("{% for x in items | default('') %}{% endfor %}")
	require.NoError(t, err)

	loop, ok := tmpl.Nodes()[0].(LoopNode)
	require.True(t, ok)
	assert.Equal(t, "items | default('')", loop.Expr)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"unterminated if", "{% if a %}X", ErrUnterminatedBlock},
		{"unterminated for", "{% for x in xs %}X", ErrUnterminatedBlock},
		{"unterminated nested", "{% if a %}{% if b %}X{% endif %}", ErrUnterminatedBlock},
		{"unterminated interpolation", "{{ name", ErrUnterminatedBlock},
		{"unterminated tag", "{% if a ", ErrUnterminatedBlock},
		{"stray endif", "X{% endif %}", ErrUnexpectedCloser},
		{"stray endfor", "{% endfor %}", ErrUnexpectedCloser},
		{"stray else", "{% else %}", ErrUnexpectedCloser},
		{"endfor closing if", "{% if a %}X{% endfor %}", ErrUnexpectedCloser},
		{"endif closing for", "{% for x in xs %}X{% endif %}", ErrUnexpectedCloser},
		{"empty interpolation", "{{ }}", ErrBadExpression},
		{"if without condition", "{% if %}X{% endif %}", ErrBadExpression},
		{"bad for head", "{% for x of xs %}X{% endfor %}", ErrBadExpression},
		{"unknown tag", "{% section a %}", ErrBadExpression},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseFailsClosed(t *testing.T) {
	tmpl, err := Parse("{% if a %}X")
	require.Error(t, err)
	assert.Nil(t, tmpl)
}

func TestParseNamedErrorsMentionName(t *testing.T) {
	_, err := ParseNamed("model", "{% if a %}X")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[model]")
}

func TestParseIgnoresLoneBraces(t *testing.T) {
	tmpl, err := Parse("func main() { return x } // {not a directive}")
	require.NoError(t, err)
	require.Len(t, tmpl.Nodes(), 1)
}
