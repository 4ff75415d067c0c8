package mapping

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/scanner"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"swizzle-generator/internal/diagnostic"
)

// ParseExpr parses the compact declaration syntax:
//
//	Vec2 { X, Y }                      self-swizzle
//	Point2 { X: Y, Y: X }              single mapping
//	Rgb { R: (R, G), G: (G), B: (B) }  combination block
//
// optionally followed by name options: prefix=To suffix="".
// The returned entry has no Source; callers supply it.
func ParseExpr(expr string) (*Entry, error) {
	open := strings.IndexByte(expr, '{')
	if open < 0 {
		return nil, fmt.Errorf("%w: %q: missing '{'", diagnostic.ErrMalformedSpec, expr)
	}

	target := strings.TrimSpace(expr[:open])
	if target == "" || strings.ContainsAny(target, " \t\n") {
		return nil, fmt.Errorf("%w: %q: expected one type name before '{'", diagnostic.ErrMalformedSpec, expr)
	}

	p := newExprParser(expr, open)

	entry := &Entry{Target: target}
	p.parseBody(entry)
	p.parseOptions(entry)

	if len(p.errs) > 0 {
		return nil, fmt.Errorf("%w: %q: %w", diagnostic.ErrMalformedSpec, expr, errors.Join(p.errs...))
	}

	return entry, nil
}

type exprItem struct {
	name   string
	single string   // X: Y
	list   []string // X: (A, B)
	paren  bool
	colon  bool
}

type exprParser struct {
	s    scanner.Scanner
	tok  rune
	base int
	errs []error
}

func newExprParser(expr string, open int) *exprParser {
	p := &exprParser{base: open}

	p.s.Init(strings.NewReader(expr[open:]))
	p.s.Mode = scanner.ScanIdents | scanner.ScanStrings
	p.s.Error = func(s *scanner.Scanner, msg string) {
		p.errorf("%s", msg)
	}

	p.next()

	return p
}

func (p *exprParser) next() {
	p.tok = p.s.Scan()
}

func (p *exprParser) errorf(format string, args ...any) {
	col := p.base + p.s.Position.Offset + 1
	p.errs = append(p.errs, fmt.Errorf("col %d: %s", col, fmt.Sprintf(format, args...)))
}

func (p *exprParser) expect(tok rune) bool {
	if p.tok != tok {
		p.errorf("expected %s, found %s", scanner.TokenString(tok), p.found())
		return false
	}

	p.next()

	return true
}

func (p *exprParser) found() string {
	if p.tok == scanner.EOF {
		return "end of input"
	}

	return strconv.Quote(p.s.TokenText())
}

func (p *exprParser) ident() (string, bool) {
	if p.tok != scanner.Ident {
		p.errorf("expected field name, found %s", p.found())
		return "", false
	}

	name := p.s.TokenText()
	p.next()

	return name, true
}

func (p *exprParser) parseBody(entry *Entry) {
	if !p.expect('{') {
		return
	}

	var items []exprItem

	for p.tok != '}' && p.tok != scanner.EOF {
		item, ok := p.parseItem()
		if !ok {
			return
		}

		items = append(items, item)

		if p.tok != ',' {
			break
		}

		p.next()
	}

	if !p.expect('}') {
		return
	}

	if len(items) == 0 {
		p.errorf("no fields between braces")
		return
	}

	p.build(entry, items)
}

func (p *exprParser) parseItem() (exprItem, bool) {
	name, ok := p.ident()
	if !ok {
		return exprItem{}, false
	}

	item := exprItem{name: name}
	if p.tok != ':' {
		return item, true
	}

	item.colon = true
	p.next()

	if p.tok != '(' {
		item.single, ok = p.ident()
		return item, ok
	}

	item.paren = true
	item.list = []string{}

	p.next()

	for p.tok != ')' && p.tok != scanner.EOF {
		c, ok := p.ident()
		if !ok {
			return item, false
		}

		item.list = append(item.list, c)

		if p.tok != ',' {
			break
		}

		p.next()
	}

	return item, p.expect(')')
}

// build picks the declaration form: no colons is a self-swizzle, any
// parenthesized list makes a combination block, otherwise a single mapping.
// A bare name among colon items keeps no candidates and fails validation.
func (p *exprParser) build(entry *Entry, items []exprItem) {
	var anyColon, anyParen bool

	for _, it := range items {
		anyColon = anyColon || it.colon
		anyParen = anyParen || it.paren
	}

	switch {
	case !anyColon:
		entry.Self = make(StringOrArray, len(items))
		for i, it := range items {
			entry.Self[i] = it.name
		}

	case anyParen:
		entry.Combine = &CandidateBlock{m: linkedhashmap.New()}

		for _, it := range items {
			var list []string

			switch {
			case it.paren:
				list = it.list
			case it.colon:
				list = []string{it.single}
			}

			if _, dup := entry.Combine.m.Get(it.name); dup {
				p.errorf("field %q is declared twice", it.name)
				continue
			}

			entry.Combine.m.Put(it.name, list)
		}

	default:
		entry.Single = &FieldPairs{m: linkedhashmap.New()}

		for _, it := range items {
			if _, dup := entry.Single.m.Get(it.name); dup {
				p.errorf("field %q is declared twice", it.name)
				continue
			}

			entry.Single.m.Put(it.name, it.single)
		}
	}
}

func (p *exprParser) parseOptions(entry *Entry) {
	for p.tok != scanner.EOF {
		key, ok := p.ident()
		if !ok {
			return
		}

		if !p.expect('=') {
			return
		}

		var value string

		switch p.tok {
		case scanner.Ident:
			value = p.s.TokenText()
		case scanner.String:
			value, _ = strconv.Unquote(p.s.TokenText())
		default:
			p.errorf("expected value for %s, found %s", key, p.found())
			return
		}

		p.next()

		switch key {
		case "prefix":
			entry.Prefix = value
		case "suffix":
			entry.Suffix = value
		default:
			p.errorf("unknown option %q (expected prefix or suffix)", key)
		}
	}
}
