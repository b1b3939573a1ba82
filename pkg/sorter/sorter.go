package sorter

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"

	"github.com/siyuan-infoblox/sort-imports/pkg/errors"
	"github.com/siyuan-infoblox/sort-imports/pkg/sortconfig"
)

var (
	ErrUnknownParser = stderrors.New(errors.ErrMsgUnknownParser)
	ErrUnknownStyle  = stderrors.New(errors.ErrMsgUnknownStyle)
)

// Result is the outcome of sorting a file
type Result struct {
	Code    string
	Changed bool
}

// Sorter sorts the leading import block of a file with registered parsers and styles
type Sorter struct {
	parsers map[string]Parser
	styles  map[string]Style
}

// New creates a Sorter with the bundled parsers and styles registered
func New() *Sorter {
	s := &Sorter{
		parsers: make(map[string]Parser),
		styles:  make(map[string]Style),
	}
	s.RegisterParser(sortconfig.ParserBabylon, NewBabylonParser())
	s.RegisterParser(sortconfig.ParserTypeScript, NewTypeScriptParser())
	s.RegisterStyle(sortconfig.StyleESLint, NewESLintStyle())
	s.RegisterStyle(sortconfig.StyleModule, NewModuleStyle())
	return s
}

// RegisterParser makes parser available under name
func (s *Sorter) RegisterParser(name string, parser Parser) {
	s.parsers[name] = parser
}

// RegisterStyle makes style available under name
func (s *Sorter) RegisterStyle(name string, style Style) {
	s.styles[name] = style
}

// Sort reorders the imports of code. filePath is only used to annotate errors.
func (s *Sorter) Sort(code, parserName, styleName, filePath string) (*Result, error) {
	parser, ok := s.parsers[parserName]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownParser, parserName)
	}
	style, ok := s.styles[styleName]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownStyle, styleName)
	}

	imports, err := parser.ParseImports(code)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	if len(imports) == 0 {
		return &Result{Code: code}, nil
	}

	for i := range imports {
		sortNamedMembers(&imports[i], style)
	}

	first, last := imports[0], imports[len(imports)-1]
	newline := lineEnding(code[first.Start:last.End])

	blocks := make([]string, 0, len(imports))
	for _, group := range style.Group(imports) {
		lines := make([]string, 0, len(group))
		for _, imp := range group {
			lines = append(lines, imp.Raw)
		}
		blocks = append(blocks, strings.Join(lines, newline))
	}

	sorted := code[:first.Start] + strings.Join(blocks, newline+newline) + code[last.End:]
	return &Result{Code: sorted, Changed: sorted != code}, nil
}

// sortNamedMembers orders the braces of imp and rewrites its raw text accordingly
func sortNamedMembers(imp *Import, style Style) {
	if imp.braceOpen < 0 || imp.braceComments || len(imp.NamedMembers) < 2 {
		return
	}

	members := append([]NamedMember(nil), imp.NamedMembers...)
	sort.SliceStable(members, func(i, j int) bool {
		return style.LessMember(members[i], members[j])
	})

	inner := imp.Raw[imp.braceOpen+1 : imp.braceClose]
	braces := renderMembers(inner, members)
	imp.Raw = imp.Raw[:imp.braceOpen] + braces + imp.Raw[imp.braceClose+1:]
	imp.braceClose = imp.braceOpen + len(braces) - 1
	imp.NamedMembers = members
}

// renderMembers renders members between braces in the layout of the original inner text
func renderMembers(inner string, members []NamedMember) string {
	names := make([]string, len(members))
	for i, member := range members {
		names[i] = member.String()
	}
	trailingComma := strings.HasSuffix(strings.TrimSpace(inner), ",")

	if !strings.Contains(inner, "\n") {
		pad := ""
		if strings.HasPrefix(inner, " ") {
			pad = " "
		}
		joined := strings.Join(names, ", ")
		if trailingComma {
			joined += ","
		}
		return "{" + pad + joined + pad + "}"
	}

	newline := lineEnding(inner)
	indent := lineIndent(inner[strings.IndexByte(inner, '\n')+1:])
	closingIndent := inner[strings.LastIndexByte(inner, '\n')+1:]
	if strings.TrimSpace(closingIndent) != "" {
		closingIndent = ""
	}

	var b strings.Builder
	b.WriteString("{")
	b.WriteString(newline)
	for i, name := range names {
		b.WriteString(indent)
		b.WriteString(name)
		if i < len(names)-1 || trailingComma {
			b.WriteString(",")
		}
		b.WriteString(newline)
	}
	b.WriteString(closingIndent)
	b.WriteString("}")
	return b.String()
}

// lineEnding returns "\r\n" when text already uses CRLF line endings
func lineEnding(text string) string {
	if strings.Contains(text, "\r\n") {
		return "\r\n"
	}
	return "\n"
}

func lineIndent(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}
