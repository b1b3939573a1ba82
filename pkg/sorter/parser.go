package sorter

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/siyuan-infoblox/sort-imports/pkg/errors"
)

var ErrUnparseable = stderrors.New(errors.ErrMsgUnparseableImport)

// Parser extracts the leading block of import statements from a source file.
// The block starts at the first statement of the file and ends at the first
// line that is neither an import nor blank.
type Parser interface {
	ParseImports(code string) ([]Import, error)
}

type parserOptions struct {
	typeImports   bool // "import type" and inline "type" members
	typeofImports bool // "import typeof"
}

type scriptParser struct {
	opts parserOptions
}

// NewBabylonParser returns a parser for JavaScript with flow type imports
func NewBabylonParser() Parser {
	return &scriptParser{opts: parserOptions{typeImports: true, typeofImports: true}}
}

// NewTypeScriptParser returns a parser for TypeScript sources
func NewTypeScriptParser() Parser {
	return &scriptParser{opts: parserOptions{typeImports: true}}
}

func (p *scriptParser) ParseImports(code string) ([]Import, error) {
	s := &scanner{src: code, opts: p.opts}
	if err := s.skipPreamble(); err != nil {
		return nil, err
	}

	var imports []Import
	for s.atImportKeyword() {
		imp, ok, err := s.parseImport()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		imports = append(imports, imp)
		s.skipWhitespace()
	}
	return imports, nil
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString
	tokPunct
)

type token struct {
	kind  tokenKind
	text  string
	start int
	end   int
}

func (t token) is(punct string) bool {
	return t.kind == tokPunct && t.text == punct
}

func (t token) isIdent(name string) bool {
	return t.kind == tokIdent && t.text == name
}

// unquote strips the quotes of a string token
func (t token) unquote() string {
	return t.text[1 : len(t.text)-1]
}

type scanner struct {
	src  string
	pos  int
	opts parserOptions
}

func (s *scanner) errorf(pos int, format string, args ...any) error {
	line := strings.Count(s.src[:pos], "\n") + 1
	return fmt.Errorf("%w at line %d: %s", ErrUnparseable, line, fmt.Sprintf(format, args...))
}

func (s *scanner) skipWhitespace() {
	for s.pos < len(s.src) && isSpace(s.src[s.pos]) {
		s.pos++
	}
}

// skipTrivia skips whitespace and comments
func (s *scanner) skipTrivia() error {
	for s.pos < len(s.src) {
		rest := s.src[s.pos:]
		switch {
		case isSpace(rest[0]):
			s.pos++
		case strings.HasPrefix(rest, "//"):
			if end := strings.IndexByte(rest, '\n'); end >= 0 {
				s.pos += end
			} else {
				s.pos = len(s.src)
			}
		case strings.HasPrefix(rest, "/*"):
			end := strings.Index(rest[2:], "*/")
			if end < 0 {
				return s.errorf(s.pos, "unterminated comment")
			}
			s.pos += end + 4
		default:
			return nil
		}
	}
	return nil
}

// skipPreamble moves past a shebang, comments and directive prologue
func (s *scanner) skipPreamble() error {
	if strings.HasPrefix(s.src, "\ufeff") {
		s.pos = len("\ufeff")
	}
	if strings.HasPrefix(s.src[s.pos:], "#!") {
		if end := strings.IndexByte(s.src[s.pos:], '\n'); end >= 0 {
			s.pos += end
		} else {
			s.pos = len(s.src)
		}
	}

	for {
		if err := s.skipTrivia(); err != nil {
			return err
		}
		if s.pos >= len(s.src) || (s.src[s.pos] != '\'' && s.src[s.pos] != '"') {
			return nil
		}

		// "use strict" style directives
		save := s.pos
		tok, err := s.next()
		if err != nil {
			return err
		}
		p := s.skipInline(tok.end)
		if p < len(s.src) && s.src[p] == ';' {
			p++
		}
		if p = s.skipInline(p); p < len(s.src) && s.src[p] != '\n' && s.src[p] != '\r' {
			s.pos = save
			return nil
		}
		s.pos = p
	}
}

// skipInline returns the first offset at or after p that is not a space or tab
func (s *scanner) skipInline(p int) int {
	for p < len(s.src) && (s.src[p] == ' ' || s.src[p] == '\t') {
		p++
	}
	return p
}

func (s *scanner) atImportKeyword() bool {
	if !strings.HasPrefix(s.src[s.pos:], "import") {
		return false
	}
	next := s.pos + len("import")
	if next == len(s.src) {
		return false
	}
	return isSpace(s.src[next]) || strings.IndexByte("{*'\"", s.src[next]) >= 0
}

func (s *scanner) next() (token, error) {
	if err := s.skipTrivia(); err != nil {
		return token{}, err
	}
	start := s.pos
	if start >= len(s.src) {
		return token{kind: tokEOF, start: start, end: start}, nil
	}

	c := s.src[start]
	switch {
	case isIdentStart(c):
		end := start + 1
		for end < len(s.src) && isIdentPart(s.src[end]) {
			end++
		}
		s.pos = end
		return token{kind: tokIdent, text: s.src[start:end], start: start, end: end}, nil
	case c == '\'' || c == '"':
		end := start + 1
		for ; end < len(s.src); end++ {
			switch s.src[end] {
			case '\\':
				end++
				continue
			case '\n':
				return token{}, s.errorf(start, "unterminated string")
			}
			if s.src[end] == c {
				s.pos = end + 1
				return token{kind: tokString, text: s.src[start:s.pos], start: start, end: s.pos}, nil
			}
		}
		return token{}, s.errorf(start, "unterminated string")
	default:
		s.pos = start + 1
		return token{kind: tokPunct, text: s.src[start:s.pos], start: start, end: s.pos}, nil
	}
}

func (s *scanner) peek() (token, error) {
	save := s.pos
	tok, err := s.next()
	s.pos = save
	return tok, err
}

func (s *scanner) expectIdent() (token, error) {
	tok, err := s.next()
	if err != nil {
		return tok, err
	}
	if tok.kind != tokIdent {
		return tok, s.errorf(tok.start, "expected identifier, found %q", tok.text)
	}
	return tok, nil
}

// parseImport parses the import statement at the current position.
// ok is false for dynamic imports and "import x = require()" forms.
func (s *scanner) parseImport() (Import, bool, error) {
	start := s.pos
	imp := Import{Start: start, braceOpen: -1, braceClose: -1}
	s.pos += len("import")

	tok, err := s.next()
	if err != nil {
		return imp, false, err
	}

	if (tok.isIdent("type") && s.opts.typeImports) || (tok.isIdent("typeof") && s.opts.typeofImports) {
		ahead, err := s.peek()
		if err != nil {
			return imp, false, err
		}
		if (ahead.kind == tokIdent && ahead.text != "from") || ahead.is("{") || ahead.is("*") {
			imp.Kind = TypeImport
			if tok.text == "typeof" {
				imp.Kind = TypeofImport
			}
			if tok, err = s.next(); err != nil {
				return imp, false, err
			}
		}
	}

	if tok.kind == tokString {
		imp.ModuleName = tok.unquote()
		return s.finishImport(imp)
	}

	if tok.kind == tokIdent {
		ahead, err := s.peek()
		if err != nil {
			return imp, false, err
		}
		if ahead.is("=") {
			return imp, false, nil
		}
		imp.DefaultMember = tok.text
		if tok, err = s.next(); err != nil {
			return imp, false, err
		}
		if tok.is(",") {
			if tok, err = s.next(); err != nil {
				return imp, false, err
			}
			if !tok.is("*") && !tok.is("{") {
				return imp, false, s.errorf(tok.start, "expected namespace or named imports, found %q", tok.text)
			}
		}
	}

	switch {
	case tok.is("*"):
		as, err := s.expectIdent()
		if err != nil {
			return imp, false, err
		}
		if as.text != "as" {
			return imp, false, s.errorf(as.start, "expected \"as\", found %q", as.text)
		}
		name, err := s.expectIdent()
		if err != nil {
			return imp, false, err
		}
		imp.NamespaceMember = name.text
		if tok, err = s.next(); err != nil {
			return imp, false, err
		}
	case tok.is("{"):
		imp.braceOpen = tok.start - start
		members, closing, err := s.parseNamedMembers()
		if err != nil {
			return imp, false, err
		}
		imp.NamedMembers = members
		imp.braceClose = closing.start - start
		if tok, err = s.next(); err != nil {
			return imp, false, err
		}
	case imp.DefaultMember == "":
		return imp, false, nil
	}

	if !tok.isIdent("from") {
		return imp, false, s.errorf(tok.start, "expected \"from\", found %q", tok.text)
	}
	module, err := s.next()
	if err != nil {
		return imp, false, err
	}
	if module.kind != tokString {
		return imp, false, s.errorf(module.start, "expected module name, found %q", module.text)
	}
	imp.ModuleName = module.unquote()
	return s.finishImport(imp)
}

func (s *scanner) parseNamedMembers() ([]NamedMember, token, error) {
	var members []NamedMember
	for {
		tok, err := s.next()
		if err != nil {
			return nil, tok, err
		}
		if tok.is("}") {
			return members, tok, nil
		}

		var member NamedMember
		if tok.isIdent("type") && s.opts.typeImports {
			ahead, err := s.peek()
			if err != nil {
				return nil, tok, err
			}
			if ahead.kind == tokIdent && ahead.text != "as" {
				member.Type = true
				if tok, err = s.next(); err != nil {
					return nil, tok, err
				}
			}
		}
		if tok.kind != tokIdent && tok.kind != tokString {
			return nil, tok, s.errorf(tok.start, "unexpected %q in named imports", tok.text)
		}
		member.Name = tok.text

		if tok, err = s.next(); err != nil {
			return nil, tok, err
		}
		if tok.isIdent("as") {
			alias, err := s.expectIdent()
			if err != nil {
				return nil, alias, err
			}
			member.Alias = alias.text
			if tok, err = s.next(); err != nil {
				return nil, tok, err
			}
		}
		members = append(members, member)

		switch {
		case tok.is("}"):
			return members, tok, nil
		case !tok.is(","):
			return nil, tok, s.errorf(tok.start, "expected \",\" or \"}\", found %q", tok.text)
		}
	}
}

// finishImport consumes import attributes, the semicolon and a trailing line comment
func (s *scanner) finishImport(imp Import) (Import, bool, error) {
	ahead, err := s.peek()
	if err != nil {
		return imp, false, err
	}
	if ahead.isIdent("with") || ahead.isIdent("assert") {
		_, _ = s.next()
		if tok, err := s.next(); err != nil || !tok.is("{") {
			if err == nil {
				err = s.errorf(tok.start, "expected import attributes")
			}
			return imp, false, err
		}
		for {
			tok, err := s.next()
			if err != nil {
				return imp, false, err
			}
			if tok.kind == tokEOF {
				return imp, false, s.errorf(tok.start, "unterminated import attributes")
			}
			if tok.is("}") {
				break
			}
		}
	}

	end := s.skipInline(s.pos)
	if end < len(s.src) && s.src[end] == ';' {
		end++
	} else {
		end = s.pos
	}
	if p := s.skipInline(end); strings.HasPrefix(s.src[p:], "//") {
		if nl := strings.IndexByte(s.src[p:], '\n'); nl >= 0 {
			end = p + nl
		} else {
			end = len(s.src)
		}
		end = p + len(strings.TrimRight(s.src[p:end], "\r"))
	}

	imp.End = end
	imp.Raw = s.src[imp.Start:end]
	if imp.braceOpen >= 0 {
		inner := imp.Raw[imp.braceOpen+1 : imp.braceClose]
		imp.braceComments = strings.Contains(inner, "//") || strings.Contains(inner, "/*")
	}
	s.pos = end
	return imp, true, nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
