// Package parser extracts task metadata from markdown list-item text.
//
// Each extractor is a Stage that reads and rewrites one *domain.Task.
// Patterns are compiled once and hold no iteration state; every scan is a
// fresh search over the current string.
package parser

import "regexp"

// Emoji markers may carry a trailing variation selector (U+FE0F).
const vs = `\x{FE0F}?`

const isoDate = `(\d{4}-\d{2}-\d{2})`

var (
	// Priority markers count only at the very end of the remaining text.
	priorityRe = regexp.MustCompile(`([🔺⏫🔼🔽⏬])` + vs + `$`)

	startDateRe     = regexp.MustCompile(`🛫` + vs + ` *` + isoDate)
	scheduledDateRe = regexp.MustCompile(`[⏳⌛]` + vs + ` *` + isoDate)
	dueDateRe       = regexp.MustCompile(`[📅📆🗓]` + vs + ` *` + isoDate)
	doneDateRe      = regexp.MustCompile(`✅` + vs + ` *` + isoDate)

	recurrenceRe = regexp.MustCompile(`(?i)🔁` + vs + ` ?([a-zA-Z0-9, !]+)`)

	hashTagRe         = regexp.MustCompile(`(^|\s)#[^\s!@#$%^&*(),.?":{}|<>]+`)
	trailingHashTagRe = regexp.MustCompile(`(^|\s)#[^\s!@#$%^&*(),.?":{}|<>]+$`)

	// [key::value] and [[key::value]]; the whole bracket run is consumed.
	keyValueRe = regexp.MustCompile(`\[+([^\]:]+)::([^\]]+)\]+`)

	outerLinkRe = regexp.MustCompile(`\[([^\]]*)\]\(([^)]+)\)`)
	innerLinkRe = regexp.MustCompile(`\[\[([^\]]+)\]\]`)

	reminderRe = regexp.MustCompile(`⏰` + vs + ` *` + isoDate + `(?: *(\d{2}:\d{2}))?|\(@` + isoDate + `(?: *(\d{2}:\d{2}))?\)`)

	// indent, list marker, checkbox character, body
	taskLineRe = regexp.MustCompile(`^([\s>]*)([-*+]|[0-9]+[.)]) +\[(.)\] *(.*)$`)
	listItemRe = regexp.MustCompile(`^([\s>]*)([-*+]|[0-9]+[.)])( +|$)`)
	blockIDRe  = regexp.MustCompile(` \^([A-Za-z0-9-]+)$`)
)
