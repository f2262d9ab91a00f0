package flow

import (
	"fmt"
	"strings"
)

// Sanitize normalizes one raw record. Each tracked field is coerced to a
// string and trimmed; blank results are replaced by the matching fallback.
// Sanitize never fails.
func Sanitize(r RawRecord, cols Columns, fb Fallbacks) CleanedRecord {
	return CleanedRecord{
		Country:     field(r, cols.Country, fb.Country),
		CategoryRaw: field(r, cols.Category, fb.Category),
		Subgroup:    field(r, cols.Subgroup, fb.Subgroup),
	}
}

// SanitizeAll applies [Sanitize] to every record, preserving order.
func SanitizeAll(records []RawRecord, cols Columns, fb Fallbacks) []CleanedRecord {
	out := make([]CleanedRecord, len(records))
	for i, r := range records {
		out[i] = Sanitize(r, cols, fb)
	}
	return out
}

func field(r RawRecord, key, fallback string) string {
	if s := strings.TrimSpace(Coerce(r[key])); s != "" {
		return s
	}
	return fallback
}

// Coerce converts a loosely-typed value to a string. Nil becomes "".
func Coerce(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
