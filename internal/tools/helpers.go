package tools

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/dandi/dandi-mcp/internal/schema"
)

// pretty re-indents a JSON payload for readable tool output. Payloads that
// do not parse are returned unchanged.
func pretty(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

// normalizeDandisetID strips the optional DANDI: prefix so identifiers can
// be passed in either form.
func normalizeDandisetID(id string) string {
	return strings.TrimPrefix(id, "DANDI:")
}

// setString adds a query parameter when the value is non-empty.
func setString(q url.Values, key, v string) {
	if v != "" {
		q.Set(key, v)
	}
}

// setInt adds a query parameter when the value is positive.
func setInt(q url.Values, key string, v int) {
	if v > 0 {
		q.Set(key, strconv.Itoa(v))
	}
}

// setBool adds a query parameter when the flag was supplied at all, so an
// explicit false still reaches the archive.
func setBool(q url.Values, key string, v *bool) {
	if v != nil {
		q.Set(key, strconv.FormatBool(*v))
	}
}

// violationList formats schema violations one per line for error messages.
func violationList(violations []schema.Violation) string {
	lines := make([]string, len(violations))
	for i, v := range violations {
		lines[i] = "  - " + v.String()
	}
	return strings.Join(lines, "\n")
}
