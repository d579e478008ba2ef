package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// RecordTable builds a table from untyped response rows. Columns are the
// union of the rows' keys, sorted, at most maxCols of them (0 = no limit).
// Nested values are rendered as compact JSON.
func RecordTable(rows []map[string]any, maxCols int) *Table {
	keys := recordKeys(rows)
	if maxCols > 0 && len(keys) > maxCols {
		keys = keys[:maxCols]
	}
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		row := make(Row, len(keys))
		for i, k := range keys {
			row[i] = Cell(r[k])
		}
		out = append(out, row)
	}
	return AutoTable(keys, out)
}

func recordKeys(rows []map[string]any) []string {
	seen := map[string]struct{}{}
	for _, r := range rows {
		for k := range r {
			seen[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Cell renders one JSON value for a table cell. nil renders as "—".
func Cell(v any) string {
	switch x := v.(type) {
	case nil:
		return "—"
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		return x.String()
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// PrettyJSON indents raw JSON for the terminal. Invalid JSON is returned as is.
func PrettyJSON(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return strings.TrimSpace(string(raw))
	}
	return buf.String()
}
