package submission

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/slipcheck/slipcheck/internal/extraction"
)

// RenderedField is one row of the transient result view.
type RenderedField struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// Render produces the key/value rows for a successful extraction, in
// field order. The rendering replaces any previous one in full and is
// never persisted; it reflects only the most recent submission.
func Render(data *extraction.SlipData) []RenderedField {
	fields := data.Fields()
	rows := make([]RenderedField, 0, len(fields))
	for _, f := range fields {
		rows = append(rows, RenderedField{
			Key:   f.Key,
			Label: FormatKey(f.Key),
			Value: FormatValue(f.Value),
		})
	}
	return rows
}

// FormatKey converts a lower-case word-separated key into
// space-separated capitalized words: "account_number" becomes
// "Account Number".
func FormatKey(key string) string {
	words := strings.FieldsFunc(key, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// FormatValue renders a field value for display: absent values become
// "N/A", booleans become "Yes"/"No", everything else its plain string
// form.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "N/A"
	case bool:
		if t {
			return "Yes"
		}
		return "No"
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}
