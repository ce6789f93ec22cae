package parser

import (
	"net/url"
	"strings"

	"github.com/runoshun/tasks-timeline/internal/domain"
)

// LinkStage replaces [display](target) and [[target|alias]] links in Visual
// by their display text and records them in Outlinks.
//
// The leftmost of the next markdown link, wiki link and key-value
// annotation is consumed first. An annotation wins a tie and is left in
// place for KeyValueStage, so [[due::2024-01-05]] is never read as a link.
type LinkStage struct{}

// NewLinkStage creates a LinkStage.
func NewLinkStage() *LinkStage {
	return &LinkStage{}
}

// Name implements Stage.
func (s *LinkStage) Name() string { return StageLinks }

type linkKind int

const (
	linkNone linkKind = iota
	linkOuter
	linkInner
	linkKeyValue
)

// Apply implements Stage.
func (s *LinkStage) Apply(t *domain.Task) error {
	text := t.Visual
	var out strings.Builder
	pos := 0
	changed := false

	for pos < len(text) {
		rest := text[pos:]
		kind, m := nextLinkMatch(rest)
		if kind == linkNone {
			break
		}

		if kind == linkKeyValue {
			out.WriteString(rest[:m[1]])
			pos += m[1]
			continue
		}

		start := m[0]
		embed := start > 0 && rest[start-1] == '!'
		prefixEnd := start
		if embed {
			prefixEnd--
		}
		out.WriteString(rest[:prefixEnd])

		var link domain.Link
		if kind == linkOuter {
			link = outerLink(rest[m[2]:m[3]], rest[m[4]:m[5]], embed)
		} else {
			link = innerLink(rest[m[2]:m[3]], embed)
		}
		link.Index = pos + prefixEnd

		out.WriteString(link.Display)
		t.AddOutlink(link)
		pos += m[1]
		changed = true
	}

	if changed {
		out.WriteString(text[pos:])
		t.Visual = strings.TrimSpace(out.String())
	}
	return nil
}

// nextLinkMatch returns the leftmost candidate in s with its submatch indexes.
func nextLinkMatch(s string) (linkKind, []int) {
	outer := outerLinkRe.FindStringSubmatchIndex(s)
	inner := innerLinkRe.FindStringSubmatchIndex(s)
	kv := keyValueRe.FindStringIndex(s)

	kind, best := linkNone, []int(nil)
	if kv != nil {
		kind, best = linkKeyValue, kv
	}
	if inner != nil && (best == nil || inner[0] < best[0]) {
		kind, best = linkInner, inner
	}
	if outer != nil && (best == nil || outer[0] < best[0]) {
		kind, best = linkOuter, outer
	}
	return kind, best
}

func outerLink(display, target string, embed bool) domain.Link {
	target = strings.TrimSpace(target)
	if decoded, err := url.PathUnescape(target); err == nil {
		target = decoded
	}
	if strings.Contains(target, "://") {
		return domain.Link{Path: target, Display: display, Type: domain.LinkFile, Embed: embed}
	}
	link := domain.InferLink(target, embed, display)
	link.Path = strings.TrimSuffix(link.Path, domain.MarkdownExt)
	return link
}

func innerLink(content string, embed bool) domain.Link {
	target, alias, hasAlias := strings.Cut(content, "|")
	target = strings.TrimSpace(target)
	display := target
	if hasAlias {
		display = strings.TrimSpace(alias)
	}
	return domain.InferLink(target, embed, display)
}
