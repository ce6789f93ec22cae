package domain

import (
	"path"
	"strings"
	"unicode"
)

// LinkType identifies what a link points at inside its target file.
type LinkType string

const (
	LinkFile   LinkType = "file"
	LinkHeader LinkType = "header"
	LinkBlock  LinkType = "block"
)

// Link is a reference from a task to a file, header or block.
// Fields are ordered to minimize memory padding.
type Link struct {
	Path    string   `json:"path" yaml:"path"`
	Display string   `json:"display,omitempty" yaml:"display,omitempty"`
	Subpath string   `json:"subpath,omitempty" yaml:"subpath,omitempty"` // Header or block id
	Type    LinkType `json:"type" yaml:"type"`
	Index   int      `json:"index" yaml:"index"` // Offset of the link markup in the task text
	Embed   bool     `json:"embed,omitempty" yaml:"embed,omitempty"`
}

// InferLink builds a link from a raw target such as "note", "note#Header" or "note#^block".
func InferLink(target string, embed bool, display string) Link {
	if file, block, ok := strings.Cut(target, "#^"); ok {
		return Link{Path: file, Subpath: block, Type: LinkBlock, Embed: embed, Display: display}
	}
	if file, header, ok := strings.Cut(target, "#"); ok {
		return Link{Path: file, Subpath: NormalizeHeaderForLink(header), Type: LinkHeader, Embed: embed, Display: display}
	}
	return Link{Path: target, Type: LinkFile, Embed: embed, Display: display}
}

// Equal reports whether both links point at the same location.
func (l Link) Equal(o Link) bool {
	return l.Path == o.Path && l.Type == o.Type && l.Subpath == o.Subpath
}

// FileName returns the target file title without directory or extension.
func (l Link) FileName() string {
	return FileTitle(l.Path)
}

// Target returns the link target in wiki-link syntax, without brackets.
func (l Link) Target() string {
	escaped := strings.ReplaceAll(l.Path, "|", `\|`)
	sub := strings.ReplaceAll(l.Subpath, "|", `\|`)
	switch l.Type {
	case LinkHeader:
		return escaped + "#" + sub
	case LinkBlock:
		return escaped + "#^" + sub
	default:
		return escaped
	}
}

// Markdown renders the link as a wiki-link.
func (l Link) Markdown() string {
	var b strings.Builder
	if l.Embed {
		b.WriteString("!")
	}
	b.WriteString("[[")
	b.WriteString(l.Target())
	b.WriteString("|")
	if l.Display != "" {
		b.WriteString(l.Display)
	} else {
		b.WriteString(l.FileName())
		if l.Type == LinkHeader || l.Type == LinkBlock {
			b.WriteString(" > ")
			b.WriteString(l.Subpath)
		}
	}
	b.WriteString("]]")
	return b.String()
}

// String implements fmt.Stringer.
func (l Link) String() string {
	return l.Markdown()
}

// FileTitle strips the directory and a trailing ".md" from a path.
func FileTitle(p string) string {
	if p == "" {
		return ""
	}
	return strings.TrimSuffix(path.Base(p), ".md")
}

// NormalizeHeaderForLink turns header text into its linkable form:
// letters, digits, '_', '-' and emoji are kept, everything else becomes
// a space, and runs of spaces collapse into one.
func NormalizeHeaderForLink(header string) string {
	var b strings.Builder
	for _, r := range header {
		if isLinkableRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func isLinkableRune(r rune) bool {
	switch {
	case r == '_' || r == '-':
		return true
	case unicode.IsLetter(r) || unicode.IsDigit(r):
		return true
	case unicode.Is(unicode.So, r) || unicode.Is(unicode.Sk, r):
		return true
	case r == 0x200D || r == 0xFE0F || unicode.Is(unicode.Mn, r):
		// Joiners, variation selectors and combining marks inside emoji sequences.
		return true
	default:
		return false
	}
}
