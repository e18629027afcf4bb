package session

import (
	"fmt"
	"unicode/utf8"
)

// Trail is the append-only audit trail of one turn. Records are kept in
// invocation order and never mutated after Append.
type Trail struct {
	records []Record
}

// Append records one action invocation, truncating output to limit characters.
func (t *Trail) Append(action string, input map[string]any, output string, limit int) Record {
	in := make(map[string]any, len(input))
	for k, v := range input {
		in[k] = v
	}
	rec := Record{
		ActionName: action,
		Input:      in,
		Output:     Truncate(output, limit),
	}
	t.records = append(t.records, rec)
	return rec
}

// Len returns the number of records.
func (t *Trail) Len() int {
	return len(t.records)
}

// Records returns a copy of the records in invocation order.
func (t *Trail) Records() []Record {
	out := make([]Record, len(t.records))
	copy(out, t.records)
	return out
}

// ToolResponses keys the records as tool_0, tool_1, ... in invocation order.
func (t *Trail) ToolResponses() map[string]Record {
	out := make(map[string]Record, len(t.records))
	for i, rec := range t.records {
		out[ToolKey(i)] = rec
	}
	return out
}

// ToolKey is the synthetic key of the i-th record of a turn.
func ToolKey(i int) string {
	return fmt.Sprintf("tool_%d", i)
}

// Truncate cuts s to at most limit characters, marking the cut with "...".
// A non-positive limit disables truncation.
func Truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	keep := limit - len(truncationMarker)
	if keep < 0 {
		keep = 0
	}
	runes := []rune(s)
	return string(runes[:keep]) + truncationMarker[:min(len(truncationMarker), limit)]
}
