package entforge

import (
	"fmt"
	"strings"
)

const (
	openInterp  = "{{"
	openTag     = "{%"
	closeInterp = "}}"
	closeTag    = "%}"
)

// Parse parses raw template text into an immutable Template. Parsing either
// fully succeeds or fails; a failed parse returns no partial tree.
func Parse(raw string) (*Template, error) {
	return ParseNamed("", raw)
}

// ParseNamed is Parse with a template name used in error messages.
func ParseNamed(name, raw string) (*Template, error) {
	p := &parser{name: name, src: raw}
	nodes, _, err := p.parseNodes(nil)
	if err != nil {
		return nil, err
	}
	return &Template{name: name, raw: raw, nodes: nodes}, nil
}

type parser struct {
	name string
	src  string
	pos  int
}

// parseNodes scans nodes until EOF or until a closing tag named in stopAt is
// seen at this nesting depth. It returns the consumed closer ("" at EOF).
// Nested blocks are handled by recursion, so a closer inside a nested block
// can never terminate an outer one.
func (p *parser) parseNodes(stopAt []string) ([]Node, string, error) {
	var nodes []Node

	for p.pos < len(p.src) {
		next := p.nextDirective()
		if next < 0 {
			nodes = appendLiteral(nodes, p.src[p.pos:])
			p.pos = len(p.src)
			break
		}
		nodes = appendLiteral(nodes, p.src[p.pos:next])
		p.pos = next

		if strings.HasPrefix(p.src[p.pos:], openInterp) {
			expr, err := p.readDirective(openInterp, closeInterp)
			if err != nil {
				return nil, "", err
			}
			if expr == "" {
				return nil, "", p.errf(ErrBadExpression, "empty interpolation")
			}
			nodes = append(nodes, InterpNode{Expr: expr})
			continue
		}

		tag, err := p.readDirective(openTag, closeTag)
		if err != nil {
			return nil, "", err
		}
		keyword, rest := splitKeyword(tag)

		switch keyword {
		case "if":
			node, err := p.parseCond(rest)
			if err != nil {
				return nil, "", err
			}
			nodes = append(nodes, node)
		case "for":
			node, err := p.parseLoop(rest)
			if err != nil {
				return nil, "", err
			}
			nodes = append(nodes, node)
		case "else", "endif", "endfor":
			if rest != "" {
				return nil, "", p.errf(ErrBadExpression, "unexpected %q after %s", rest, keyword)
			}
			for _, stop := range stopAt {
				if keyword == stop {
					return nodes, keyword, nil
				}
			}
			return nil, "", p.errf(ErrUnexpectedCloser, "{%% %s %%}", keyword)
		default:
			return nil, "", p.errf(ErrBadExpression, "unknown tag %q", keyword)
		}
	}

	if len(stopAt) > 0 {
		return nil, "", p.errf(ErrUnterminatedBlock, "missing {%% %s %%}", stopAt[len(stopAt)-1])
	}
	return nodes, "", nil
}

func (p *parser) parseCond(guard string) (Node, error) {
	if guard == "" {
		return nil, p.errf(ErrBadExpression, "if tag without condition")
	}
	then, closer, err := p.parseNodes([]string{"else", "endif"})
	if err != nil {
		return nil, err
	}
	cond := CondNode{Guard: guard, Then: then}
	if closer == "else" {
		cond.Else, _, err = p.parseNodes([]string{"endif"})
		if err != nil {
			return nil, err
		}
	}
	return cond, nil
}

func (p *parser) parseLoop(head string) (Node, error) {
	// head is "x in expr"
	fields := strings.Fields(head)
	if len(fields) < 3 || fields[1] != "in" {
		return nil, p.errf(ErrBadExpression, "for tag must be {%% for x in expr %%}, got %q", head)
	}
	body, _, err := p.parseNodes([]string{"endfor"})
	if err != nil {
		return nil, err
	}
	return LoopNode{
		Var:  fields[0],
		Expr: strings.Join(fields[2:], " "),
		Body: body,
	}, nil
}

// nextDirective returns the offset of the next {{ or {% at or after pos, or -1.
func (p *parser) nextDirective() int {
	i := strings.Index(p.src[p.pos:], "{")
	for i >= 0 {
		abs := p.pos + i
		if strings.HasPrefix(p.src[abs:], openInterp) || strings.HasPrefix(p.src[abs:], openTag) {
			return abs
		}
		j := strings.Index(p.src[abs+1:], "{")
		if j < 0 {
			return -1
		}
		i += 1 + j
	}
	return -1
}

// readDirective consumes an open marker at pos and returns the trimmed text up
// to its close marker.
func (p *parser) readDirective(open, close string) (string, error) {
	start := p.pos + len(open)
	end := strings.Index(p.src[start:], close)
	if end < 0 {
		return "", p.errf(ErrUnterminatedBlock, "%s without %s", open, close)
	}
	p.pos = start + end + len(close)
	return strings.TrimSpace(p.src[start : start+end]), nil
}

func splitKeyword(tag string) (keyword, rest string) {
	keyword, rest, _ = strings.Cut(tag, " ")
	return keyword, strings.TrimSpace(rest)
}

func appendLiteral(nodes []Node, text string) []Node {
	if text == "" {
		return nodes
	}
	return append(nodes, LiteralNode{Text: text})
}

func (p *parser) errf(sentinel error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if p.name != "" {
		return fmt.Errorf("[%s] %w: %s", p.name, sentinel, msg)
	}
	return fmt.Errorf("%w: %s", sentinel, msg)
}
