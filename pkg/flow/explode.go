package flow

import (
	"regexp"
	"strings"
)

// ParseKind tells which rule produced a [Parsed] category field.
type ParseKind int

const (
	// Passthrough keeps the whole field as one label.
	Passthrough ParseKind = iota
	// SeparatorSplit splits on any of , ; | /
	SeparatorSplit
	// QuotedListMatch extracts single-quoted items, e.g. "['Freestyle', 'Relay']".
	QuotedListMatch
)

func (k ParseKind) String() string {
	switch k {
	case SeparatorSplit:
		return "separator-split"
	case QuotedListMatch:
		return "quoted-list"
	default:
		return "passthrough"
	}
}

// Parsed is the result of parsing one category field.
type Parsed struct {
	Kind  ParseKind
	Items []string
}

var (
	quotedItemRe = regexp.MustCompile(`'([^']*)'`)
	separatorRe  = regexp.MustCompile(`[,;|/]`)
)

// quotedListJoiner joins quoted-list items into one composite label.
const quotedListJoiner = ", "

// ParseCategory parses a cleaned category field. Precedence is
// QuotedListMatch > SeparatorSplit > Passthrough: a field containing quoted
// items is never re-split on commas.
func ParseCategory(raw string) Parsed {
	var quoted []string
	for _, m := range quotedItemRe.FindAllStringSubmatch(raw, -1) {
		// '' would produce an empty label
		if item := strings.TrimSpace(m[1]); item != "" {
			quoted = append(quoted, item)
		}
	}
	if len(quoted) > 0 {
		return Parsed{Kind: QuotedListMatch, Items: quoted}
	}

	var items []string
	for _, piece := range separatorRe.Split(raw, -1) {
		if piece = strings.TrimSpace(piece); piece != "" {
			items = append(items, piece)
		}
	}
	if len(items) == 0 || (len(items) == 1 && items[0] == strings.TrimSpace(raw)) {
		return Parsed{Kind: Passthrough, Items: []string{raw}}
	}
	return Parsed{Kind: SeparatorSplit, Items: items}
}

// Labels returns the atomic category labels of p. A quoted list collapses
// into one composite label unless splitQuoted is set.
func (p Parsed) Labels(splitQuoted bool) []string {
	if p.Kind == QuotedListMatch && !splitQuoted {
		return []string{strings.Join(p.Items, quotedListJoiner)}
	}
	return p.Items
}

// ExplodeCategory returns the atomic labels of one cleaned category field.
// The result always holds at least one label.
func ExplodeCategory(raw string, splitQuoted bool) []string {
	return ParseCategory(raw).Labels(splitQuoted)
}

// Explode duplicates every record once per atomic category label,
// preserving input order.
func Explode(records []CleanedRecord, splitQuoted bool) []ExplodedRecord {
	out := make([]ExplodedRecord, 0, len(records))
	for _, r := range records {
		for _, label := range ExplodeCategory(r.CategoryRaw, splitQuoted) {
			out = append(out, ExplodedRecord{Country: r.Country, Category: label, Subgroup: r.Subgroup})
		}
	}
	return out
}
