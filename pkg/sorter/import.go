package sorter

import (
	"strings"
)

// ImportKind distinguishes value imports from type-only imports
type ImportKind int

const (
	ValueImport ImportKind = iota
	TypeImport
	TypeofImport
)

// NamedMember is a single entry of an import's braces
type NamedMember struct {
	Name  string // exported name
	Alias string // local name, empty when not renamed
	Type  bool   // inline "type" modifier
}

// Local returns the binding name the member introduces
func (m NamedMember) Local() string {
	if m.Alias != "" {
		return m.Alias
	}
	return m.Name
}

func (m NamedMember) String() string {
	var b strings.Builder
	if m.Type {
		b.WriteString("type ")
	}
	b.WriteString(m.Name)
	if m.Alias != "" {
		b.WriteString(" as ")
		b.WriteString(m.Alias)
	}
	return b.String()
}

// Import represents a single import statement
type Import struct {
	Start int // offset of the "import" keyword in the source
	End   int // offset after the statement and its trailing line comment
	Raw   string

	Kind            ImportKind
	ModuleName      string
	DefaultMember   string
	NamespaceMember string
	NamedMembers    []NamedMember

	// brace offsets relative to Raw, -1 when the import has no braces
	braceOpen  int
	braceClose int
	// braces contain comments, members are left in place
	braceComments bool
}

// HasMembers reports whether the import binds any name
func (i Import) HasMembers() bool {
	return i.DefaultMember != "" || i.NamespaceMember != "" || len(i.NamedMembers) > 0
}

// IsRelative reports whether the module is addressed by a relative path
func (i Import) IsRelative() bool {
	return strings.HasPrefix(i.ModuleName, ".")
}

// MemberCount returns the number of bindings the import introduces
func (i Import) MemberCount() int {
	count := len(i.NamedMembers)
	if i.DefaultMember != "" {
		count++
	}
	if i.NamespaceMember != "" {
		count++
	}
	return count
}

// FirstMember returns the first local binding of the import, or "" for side effect imports
func (i Import) FirstMember() string {
	switch {
	case i.DefaultMember != "":
		return i.DefaultMember
	case i.NamespaceMember != "":
		return i.NamespaceMember
	case len(i.NamedMembers) > 0:
		return i.NamedMembers[0].Local()
	}
	return ""
}
