package matches

import (
	"io/fs"
	"strings"
)

// Kind is the base classification of a match.
type Kind uint8

const (
	// KindNone is an unclassified match.
	KindNone Kind = iota
	KindWord
	KindArg
	KindCmd
	KindAlias
	KindFile
	KindDir
	KindLink
)

var kindNames = [...]string{
	KindNone:  "none",
	KindWord:  "word",
	KindArg:   "arg",
	KindCmd:   "cmd",
	KindAlias: "alias",
	KindFile:  "file",
	KindDir:   "dir",
	KindLink:  "link",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// Flags are attributes that combine with any Kind.
type Flags uint8

const (
	FlagHidden Flags = 1 << iota
	FlagReadonly
)

// Type classifies a match. Kind and Flags are independent: changing one never
// affects the other, and comparisons between matches look at Kind alone.
type Type struct {
	Kind  Kind
	Flags Flags
}

// TypeOf is shorthand for a Type with the given kind and flags.
func TypeOf(kind Kind, flags ...Flags) Type {
	t := Type{Kind: kind}
	for _, f := range flags {
		t.Flags |= f
	}
	return t
}

// Is reports whether t has the given base kind.
func (t Type) Is(kind Kind) bool {
	return t.Kind == kind
}

// Has reports whether every flag in f is set.
func (t Type) Has(f Flags) bool {
	return t.Flags&f == f
}

// IsPathish reports whether the match names something on a filesystem.
func (t Type) IsPathish() bool {
	return t.Kind >= KindFile && t.Kind <= KindLink
}

func (t Type) String() string {
	var sb strings.Builder
	sb.WriteString(t.Kind.String())
	if t.Has(FlagHidden) {
		sb.WriteString(",hidden")
	}
	if t.Has(FlagReadonly) {
		sb.WriteString(",readonly")
	}
	return sb.String()
}

// ParseType parses a list of type names such as "file,hidden" or "dir|readonly".
// Names are case insensitive and may be separated by any of ",;+|./" or
// spaces. A later kind replaces an earlier one, flags accumulate, and unknown
// names are ignored.
func ParseType(names string) Type {
	var t Type
	fields := strings.FieldsFunc(names, func(r rune) bool {
		return strings.ContainsRune(",;+|./ \t", r)
	})

	for _, field := range fields {
		switch strings.ToLower(field) {
		case "word":
			t.Kind = KindWord
		case "arg":
			t.Kind = KindArg
		case "cmd":
			t.Kind = KindCmd
		case "alias":
			t.Kind = KindAlias
		case "file":
			t.Kind = KindFile
		case "dir":
			t.Kind = KindDir
		case "link", "symlink":
			t.Kind = KindLink
		case "hidden":
			t.Flags |= FlagHidden
		case "readonly":
			t.Flags |= FlagReadonly
		}
	}
	return t
}

// TypeFromFileInfo classifies a directory entry. Names starting with a dot are
// hidden and entries without the owner write bit are readonly.
func TypeFromFileInfo(name string, mode fs.FileMode) Type {
	var t Type
	switch {
	case mode.IsDir():
		t.Kind = KindDir
	case mode&fs.ModeSymlink != 0:
		t.Kind = KindLink
	default:
		t.Kind = KindFile
	}

	if strings.HasPrefix(name, ".") && name != "." && name != ".." {
		t.Flags |= FlagHidden
	}
	if mode.Perm()&0200 == 0 {
		t.Flags |= FlagReadonly
	}
	return t
}
