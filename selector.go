package gesture

import (
	"errors"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ErrInvalidSelector is returned (wrapped) for selectors that cannot be parsed.
var ErrInvalidSelector = errors.New("gesture: invalid selector")

// Selector is a parsed selector group such as "li.item, #toolbar > button".
//
// Supported syntax: type selectors, "*", "#name", ".class", compound
// combinations of those, and the descendant (whitespace) and child (">")
// combinators. Groups are separated by commas.
type Selector struct {
	source string
	groups []complexSelector
}

type combinator uint8

const (
	combDescendant combinator = iota
	combChild
)

// complexSelector is a chain of compounds; combinators[i] joins parts[i]
// and parts[i+1].
type complexSelector struct {
	parts       []compoundSelector
	combinators []combinator
}

type compoundSelector struct {
	tag     string // "" or "*" matches any tag
	name    string
	classes []string
}

// ParseSelector parses src into a Selector.
func ParseSelector(src string) (*Selector, error) {
	trimmed := strings.TrimSpace(src)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty selector", ErrInvalidSelector)
	}
	sel := &Selector{source: trimmed}
	for _, group := range strings.Split(trimmed, ",") {
		cs, err := parseComplex(strings.TrimSpace(group))
		if err != nil {
			return nil, fmt.Errorf("%w %q: %s", ErrInvalidSelector, src, err.Error())
		}
		sel.groups = append(sel.groups, cs)
	}
	return sel, nil
}

// String returns the selector source text.
func (sel *Selector) String() string {
	return sel.source
}

func parseComplex(src string) (complexSelector, error) {
	var cs complexSelector
	if src == "" {
		return cs, errors.New("empty group")
	}
	comb := combDescendant
	sawChild := false
	for i := 0; i < len(src); {
		c := src[i]
		if isSelectorSpace(c) {
			i++
			continue
		}
		if c == '>' {
			if len(cs.parts) == 0 || sawChild {
				return cs, fmt.Errorf("unexpected '>' at offset %d", i)
			}
			comb = combChild
			sawChild = true
			i++
			continue
		}
		comp, n, err := parseCompound(src[i:])
		if err != nil {
			return cs, fmt.Errorf("%s at offset %d", err.Error(), i)
		}
		if len(cs.parts) > 0 {
			cs.combinators = append(cs.combinators, comb)
		}
		cs.parts = append(cs.parts, comp)
		comb = combDescendant
		sawChild = false
		i += n
	}
	if sawChild {
		return cs, errors.New("dangling '>'")
	}
	return cs, nil
}

// parseCompound reads one compound selector from the start of s and returns
// it with the number of bytes consumed.
func parseCompound(s string) (compoundSelector, int, error) {
	var comp compoundSelector
	i := 0
	if s[0] == '*' {
		comp.tag = "*"
		i = 1
	} else if n := identLen(s); n > 0 {
		comp.tag = s[:n]
		i = n
	}
	for i < len(s) {
		switch c := s[i]; {
		case c == '#' || c == '.':
			n := identLen(s[i+1:])
			if n == 0 {
				return comp, 0, fmt.Errorf("missing name after %q", c)
			}
			ident := s[i+1 : i+1+n]
			if c == '#' {
				if comp.name != "" && comp.name != ident {
					return comp, 0, errors.New("conflicting #name")
				}
				comp.name = ident
			} else {
				comp.classes = append(comp.classes, ident)
			}
			i += 1 + n
		case isSelectorSpace(c) || c == '>':
			return comp, i, nil
		default:
			return comp, 0, fmt.Errorf("unexpected %q", c)
		}
	}
	if i == 0 {
		return comp, 0, errors.New("empty compound")
	}
	return comp, i, nil
}

func identLen(s string) int {
	n := 0
	for n < len(s) {
		c := s[n]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
			c == '-' || c == '_' || c >= 0x80 {
			n++
			continue
		}
		break
	}
	return n
}

func isSelectorSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// --- Matching ---

// Match reports whether n matches any group of the selector.
func (sel *Selector) Match(n *Node) bool {
	if n == nil {
		return false
	}
	for i := range sel.groups {
		if sel.groups[i].matchAt(n, len(sel.groups[i].parts)-1) {
			return true
		}
	}
	return false
}

// QueryAll returns the descendants of root matching the selector, in
// document order. root itself is never included.
func (sel *Selector) QueryAll(root *Node) []*Node {
	var out []*Node
	root.walk(func(n *Node) bool {
		if sel.Match(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

func (cs *complexSelector) matchAt(n *Node, idx int) bool {
	if !cs.parts[idx].match(n) {
		return false
	}
	if idx == 0 {
		return true
	}
	if cs.combinators[idx-1] == combChild {
		return n.Parent != nil && cs.matchAt(n.Parent, idx-1)
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if cs.matchAt(p, idx-1) {
			return true
		}
	}
	return false
}

func (c *compoundSelector) match(n *Node) bool {
	if c.tag != "" && c.tag != "*" && c.tag != n.Tag {
		return false
	}
	if c.name != "" && c.name != n.Name {
		return false
	}
	for _, class := range c.classes {
		if !n.HasClass(class) {
			return false
		}
	}
	return true
}

// --- Parse cache ---

const selectorCacheSize = 256

// selectorCache holds parsed selectors keyed by source text. Only the parse
// is cached; which nodes match is always computed against the live tree.
var selectorCache = func() *lru.Cache[string, *Selector] {
	c, err := lru.New[string, *Selector](selectorCacheSize)
	if err != nil {
		panic(err)
	}
	return c
}()

// compileSelector returns the parsed selector for src, consulting the cache.
func compileSelector(src string) (*Selector, error) {
	if sel, ok := selectorCache.Get(src); ok {
		return sel, nil
	}
	sel, err := ParseSelector(src)
	if err != nil {
		return nil, err
	}
	selectorCache.Add(src, sel)
	return sel, nil
}

// --- Node query API ---

// QuerySelectorAll returns the descendants of n matching selector in
// document order.
func (n *Node) QuerySelectorAll(selector string) ([]*Node, error) {
	sel, err := compileSelector(selector)
	if err != nil {
		return nil, err
	}
	return sel.QueryAll(n), nil
}

// QuerySelector returns the first descendant of n matching selector, or nil.
func (n *Node) QuerySelector(selector string) (*Node, error) {
	sel, err := compileSelector(selector)
	if err != nil {
		return nil, err
	}
	var found *Node
	n.walk(func(c *Node) bool {
		if sel.Match(c) {
			found = c
			return false
		}
		return true
	})
	return found, nil
}

// Matches reports whether n itself matches selector.
func (n *Node) Matches(selector string) (bool, error) {
	sel, err := compileSelector(selector)
	if err != nil {
		return false, err
	}
	return sel.Match(n), nil
}

// Closest returns n or its nearest ancestor matching selector, or nil.
func (n *Node) Closest(selector string) (*Node, error) {
	sel, err := compileSelector(selector)
	if err != nil {
		return nil, err
	}
	for p := n; p != nil; p = p.Parent {
		if sel.Match(p) {
			return p, nil
		}
	}
	return nil, nil
}
