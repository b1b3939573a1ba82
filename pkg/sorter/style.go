package sorter

import (
	"sort"
	"strings"
	"unicode"

	"github.com/siyuan-infoblox/sort-imports/pkg/std"
)

// Style decides the order of imports and how they are grouped
type Style interface {
	// Group orders imports and splits them into blocks separated by a blank line
	Group(imports []Import) [][]Import
	// LessMember orders the named members inside an import's braces
	LessMember(a, b NamedMember) bool
}

// MemberSyntax classifies an import by the shape of its bindings
type MemberSyntax int

const (
	NoMemberSyntax MemberSyntax = iota
	AllMemberSyntax
	MultipleMemberSyntax
	SingleMemberSyntax
)

// memberSyntaxOf classifies imp the way eslint's sort-imports rule does
func memberSyntaxOf(imp Import) MemberSyntax {
	switch {
	case !imp.HasMembers():
		return NoMemberSyntax
	case imp.NamespaceMember != "":
		return AllMemberSyntax
	case imp.MemberCount() > 1:
		return MultipleMemberSyntax
	default:
		return SingleMemberSyntax
	}
}

// eslintStyle keeps a single block ordered by member syntax, then by first member
type eslintStyle struct{}

// NewESLintStyle returns the style matching eslint's sort-imports rule
func NewESLintStyle() Style {
	return eslintStyle{}
}

func (eslintStyle) Group(imports []Import) [][]Import {
	sorted := append([]Import(nil), imports...)
	sort.SliceStable(sorted, func(i, j int) bool {
		si, sj := memberSyntaxOf(sorted[i]), memberSyntaxOf(sorted[j])
		if si != sj {
			return si < sj
		}
		return sorted[i].FirstMember() < sorted[j].FirstMember()
	})
	return [][]Import{sorted}
}

func (eslintStyle) LessMember(a, b NamedMember) bool {
	return a.Local() < b.Local()
}

// ImportGroup represents the blocks of the module style
type ImportGroup int

const (
	SideEffectAbsoluteGroup ImportGroup = iota
	SideEffectRelativeGroup
	BuiltinGroup
	AbsoluteGroup
	RelativeGroup
)

// moduleStyle groups imports by where the module comes from
type moduleStyle struct{}

// NewModuleStyle returns the style grouping builtin, absolute and relative modules
func NewModuleStyle() Style {
	return moduleStyle{}
}

// classifyImport determines which group an import belongs to
func (moduleStyle) classifyImport(imp Import) ImportGroup {
	switch {
	case !imp.HasMembers() && imp.IsRelative():
		return SideEffectRelativeGroup
	case !imp.HasMembers():
		return SideEffectAbsoluteGroup
	case std.IsBuiltinModule(imp.ModuleName):
		return BuiltinGroup
	case imp.IsRelative():
		return RelativeGroup
	default:
		return AbsoluteGroup
	}
}

func (m moduleStyle) Group(imports []Import) [][]Import {
	grouped := make(map[ImportGroup][]Import)
	for _, imp := range imports {
		group := m.classifyImport(imp)
		grouped[group] = append(grouped[group], imp)
	}

	// Side effect imports keep their order
	sort.SliceStable(grouped[BuiltinGroup], byModuleName(grouped[BuiltinGroup]))
	sort.SliceStable(grouped[AbsoluteGroup], byModuleName(grouped[AbsoluteGroup]))
	relative := grouped[RelativeGroup]
	sort.SliceStable(relative, func(i, j int) bool {
		di, dj := dotSegmentCount(relative[i].ModuleName), dotSegmentCount(relative[j].ModuleName)
		if di != dj {
			return di > dj
		}
		return naturalLess(relative[i].ModuleName, relative[j].ModuleName)
	})

	var blocks [][]Import
	for group := SideEffectAbsoluteGroup; group <= RelativeGroup; group++ {
		if len(grouped[group]) > 0 {
			blocks = append(blocks, grouped[group])
		}
	}
	return blocks
}

func (moduleStyle) LessMember(a, b NamedMember) bool {
	return a.Local() < b.Local()
}

func byModuleName(imports []Import) func(i, j int) bool {
	return func(i, j int) bool {
		return naturalLess(imports[i].ModuleName, imports[j].ModuleName)
	}
}

// dotSegmentCount counts the leading "." and ".." segments of a relative path
func dotSegmentCount(moduleName string) int {
	count := 0
	for _, segment := range strings.Split(moduleName, "/") {
		if segment != "." && segment != ".." {
			break
		}
		if segment == ".." {
			count++
		}
	}
	return count
}

// naturalLess compares case-insensitively, treating digit runs as numbers
func naturalLess(a, b string) bool {
	ra, rb := []rune(a), []rune(b)
	i, j := 0, 0
	for i < len(ra) && j < len(rb) {
		if unicode.IsDigit(ra[i]) && unicode.IsDigit(rb[j]) {
			si := i
			for i < len(ra) && unicode.IsDigit(ra[i]) {
				i++
			}
			sj := j
			for j < len(rb) && unicode.IsDigit(rb[j]) {
				j++
			}
			na := strings.TrimLeft(string(ra[si:i]), "0")
			nb := strings.TrimLeft(string(rb[sj:j]), "0")
			if len(na) != len(nb) {
				return len(na) < len(nb)
			}
			if na != nb {
				return na < nb
			}
			continue
		}

		ca, cb := unicode.ToLower(ra[i]), unicode.ToLower(rb[j])
		if ca != cb {
			return ca < cb
		}
		i++
		j++
	}
	if len(ra)-i != len(rb)-j {
		return len(ra)-i < len(rb)-j
	}
	return a < b
}
