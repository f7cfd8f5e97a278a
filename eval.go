package entforge

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/entforge/entforge/strcase"
)

// Evaluate resolves an expression against a context. Missing names resolve to
// the Missing sentinel rather than failing, so conditionals can probe for
// optional values; interpolation is where Missing becomes an error.
func Evaluate(expr string, ctx Context) (any, error) {
	return evalInScope(expr, rootScope(ctx))
}

func evalInScope(expr string, sc *scope) (any, error) {
	toks, err := lexExpr(expr)
	if err != nil {
		return nil, err
	}
	e := &evaluator{toks: toks, sc: sc}
	v, err := e.parseOr()
	if err != nil {
		return nil, err
	}
	if e.peek().kind != tokEOF {
		return nil, fmt.Errorf("%w: trailing %q in %q", ErrBadExpression, e.peek().text, expr)
	}
	return v, nil
}

type tokKind int

const (
	tokEOF tokKind = iota
	tokIdent
	tokString
	tokNumber
	tokOp
)

type token struct {
	kind tokKind
	text string
}

func lexExpr(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '|' || c == '(' || c == ')' || c == ',':
			toks = append(toks, token{tokOp, string(c)})
			i++
		case c == '=' || c == '!':
			if i+1 >= len(src) || src[i+1] != '=' {
				return nil, fmt.Errorf("%w: stray %q in %q", ErrBadExpression, string(c), src)
			}
			toks = append(toks, token{tokOp, src[i : i+2]})
			i += 2
		case c == '\'' || c == '"':
			end := strings.IndexByte(src[i+1:], c)
			if end < 0 {
				return nil, fmt.Errorf("%w: unclosed string in %q", ErrBadExpression, src)
			}
			toks = append(toks, token{tokString, src[i+1 : i+1+end]})
			i += end + 2
		case c >= '0' && c <= '9':
			j := i
			for j < len(src) && (src[j] >= '0' && src[j] <= '9' || src[j] == '.') {
				j++
			}
			toks = append(toks, token{tokNumber, src[i:j]})
			i = j
		case isIdentByte(c):
			j := i
			for j < len(src) && (isIdentByte(src[j]) || src[j] == '.') {
				j++
			}
			toks = append(toks, token{tokIdent, src[i:j]})
			i = j
		default:
			return nil, fmt.Errorf("%w: unexpected %q in %q", ErrBadExpression, string(c), src)
		}
	}
	return append(toks, token{kind: tokEOF}), nil
}

// isIdentByte allows '-' so kebab-cased context keys like name-kebab resolve
// as plain identifiers; there is no subtraction operator in this grammar.
func isIdentByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' || c == '-'
}

type evaluator struct {
	toks []token
	pos  int
	sc   *scope
}

func (e *evaluator) peek() token {
	return e.toks[e.pos]
}

func (e *evaluator) next() token {
	t := e.toks[e.pos]
	if t.kind != tokEOF {
		e.pos++
	}
	return t
}

func (e *evaluator) acceptOp(text string) bool {
	if t := e.peek(); t.kind == tokOp && t.text == text {
		e.pos++
		return true
	}
	return false
}

func (e *evaluator) acceptKeyword(word string) bool {
	if t := e.peek(); t.kind == tokIdent && t.text == word {
		e.pos++
		return true
	}
	return false
}

func (e *evaluator) parseOr() (any, error) {
	v, err := e.parseAnd()
	if err != nil {
		return nil, err
	}
	for e.acceptKeyword("or") {
		rhs, err := e.parseAnd()
		if err != nil {
			return nil, err
		}
		v = truthy(v) || truthy(rhs)
	}
	return v, nil
}

func (e *evaluator) parseAnd() (any, error) {
	v, err := e.parseNot()
	if err != nil {
		return nil, err
	}
	for e.acceptKeyword("and") {
		rhs, err := e.parseNot()
		if err != nil {
			return nil, err
		}
		v = truthy(v) && truthy(rhs)
	}
	return v, nil
}

func (e *evaluator) parseNot() (any, error) {
	if e.acceptKeyword("not") {
		v, err := e.parseNot()
		if err != nil {
			return nil, err
		}
		return !truthy(v), nil
	}
	return e.parseCompare()
}

func (e *evaluator) parseCompare() (any, error) {
	left, err := e.parsePipeline()
	if err != nil {
		return nil, err
	}
	if e.acceptOp("==") {
		right, err := e.parsePipeline()
		if err != nil {
			return nil, err
		}
		return looseEqual(left, right), nil
	}
	if e.acceptOp("!=") {
		right, err := e.parsePipeline()
		if err != nil {
			return nil, err
		}
		return !looseEqual(left, right), nil
	}
	return left, nil
}

func (e *evaluator) parsePipeline() (any, error) {
	v, err := e.parsePrimary()
	if err != nil {
		return nil, err
	}
	for e.acceptOp("|") {
		name := e.next()
		if name.kind != tokIdent {
			return nil, fmt.Errorf("%w: filter name expected after |", ErrBadExpression)
		}
		args, err := e.parseFilterArgs()
		if err != nil {
			return nil, err
		}
		v, err = applyFilter(name.text, v, args)
		if err != nil {
			return nil, err
		}
	}
	return v, nil
}

// parseFilterArgs parses an optional literal argument list: ("a", 2).
func (e *evaluator) parseFilterArgs() ([]any, error) {
	if !e.acceptOp("(") {
		return nil, nil
	}
	var args []any
	if e.acceptOp(")") {
		return args, nil
	}
	for {
		t := e.next()
		switch t.kind {
		case tokString:
			args = append(args, t.text)
		case tokNumber:
			n, err := parseNumber(t.text)
			if err != nil {
				return nil, err
			}
			args = append(args, n)
		case tokIdent:
			switch t.text {
			case "true":
				args = append(args, true)
			case "false":
				args = append(args, false)
			default:
				return nil, fmt.Errorf("%w: filter arguments must be literals, got %q", ErrBadExpression, t.text)
			}
		default:
			return nil, fmt.Errorf("%w: bad filter argument", ErrBadExpression)
		}
		if e.acceptOp(",") {
			continue
		}
		if e.acceptOp(")") {
			return args, nil
		}
		return nil, fmt.Errorf("%w: missing ) in filter arguments", ErrBadExpression)
	}
}

func (e *evaluator) parsePrimary() (any, error) {
	if e.acceptOp("(") {
		v, err := e.parseOr()
		if err != nil {
			return nil, err
		}
		if !e.acceptOp(")") {
			return nil, fmt.Errorf("%w: missing )", ErrBadExpression)
		}
		return v, nil
	}

	t := e.next()
	switch t.kind {
	case tokString:
		return t.text, nil
	case tokNumber:
		return parseNumber(t.text)
	case tokIdent:
		switch t.text {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return e.resolvePath(t.text), nil
	default:
		return nil, fmt.Errorf("%w: value expected, got %q", ErrBadExpression, t.text)
	}
}

// resolvePath walks a dotted path; any unresolved step yields Missing.
func (e *evaluator) resolvePath(path string) any {
	segments := strings.Split(path, ".")
	v := e.sc.lookup(segments[0])
	for _, seg := range segments[1:] {
		if IsMissing(v) {
			return Missing
		}
		v = fieldOf(v, seg)
	}
	return v
}

func parseNumber(text string) (any, error) {
	if n, err := strconv.Atoi(text); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad number %q", ErrBadExpression, text)
	}
	return f, nil
}

func looseEqual(a, b any) bool {
	if IsMissing(a) || IsMissing(b) {
		return IsMissing(a) && IsMissing(b)
	}
	if na, aok := asFloat(a); aok {
		if nb, bok := asFloat(b); bok {
			return na == nb
		}
		return false
	}
	return a == b
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// filterFunc transforms a piped value. Filters other than default pass the
// Missing sentinel through untouched, so pipelines stay usable in boolean
// guards; interpolation still rejects the final Missing.
type filterFunc func(v any, args []any) (any, error)

var filters = map[string]filterFunc{
	"pascal_case":    caseFilter(strcase.ToPascalCase),
	"camel_case":     caseFilter(strcase.ToCamelCase),
	"snake_case":     caseFilter(strcase.ToSnakeCase),
	"kebab_case":     caseFilter(strcase.ToKebabCase),
	"screaming_case": caseFilter(strcase.ToScreamingCase),
	"plural":         caseFilter(strcase.Pluralize),
	"default":        filterDefault,
	"length":         filterLength,
	"join":           filterJoin,
}

func applyFilter(name string, v any, args []any) (any, error) {
	fn, ok := filters[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownFilter, name)
	}
	if IsMissing(v) && name != "default" {
		return Missing, nil
	}
	return fn(v, args)
}

func caseFilter(convert func(string) (string, error)) filterFunc {
	return func(v any, args []any) (any, error) {
		if len(args) != 0 {
			return nil, fmt.Errorf("%w: case filters take no arguments", ErrBadExpression)
		}
		s, err := stringify(v)
		if err != nil {
			return nil, err
		}
		return convert(s)
	}
}

func filterDefault(v any, args []any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: default takes exactly one argument", ErrBadExpression)
	}
	if IsMissing(v) || v == nil {
		return args[0], nil
	}
	return v, nil
}

func filterLength(v any, args []any) (any, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("%w: length takes no arguments", ErrBadExpression)
	}
	if list, ok := asList(v); ok {
		return len(list), nil
	}
	switch val := v.(type) {
	case string:
		return len(val), nil
	case Context:
		return len(val), nil
	case map[string]any:
		return len(val), nil
	}
	return nil, fmt.Errorf("%w: length of %T", ErrNotIterable, v)
}

func filterJoin(v any, args []any) (any, error) {
	sep := ", "
	if len(args) > 1 {
		return nil, fmt.Errorf("%w: join takes at most one argument", ErrBadExpression)
	}
	if len(args) == 1 {
		s, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("%w: join separator must be a string", ErrBadExpression)
		}
		sep = s
	}
	list, ok := asList(v)
	if !ok {
		return nil, fmt.Errorf("%w: join of %T", ErrNotIterable, v)
	}
	parts := make([]string, len(list))
	for i, item := range list {
		s, err := stringify(item)
		if err != nil {
			return nil, err
		}
		parts[i] = s
	}
	return strings.Join(parts, sep), nil
}
