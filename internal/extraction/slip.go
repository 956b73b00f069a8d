package extraction

import (
	"encoding/json"
	"sort"
	"strconv"
)

// Known field keys returned by the extraction service, in the order the
// result view renders them.
const (
	KeyTransactionType  = "transaction_type"
	KeyAccountNumber    = "account_number"
	KeyDate             = "date"
	KeyAmount           = "amount"
	KeySpecialTextFound = "special_text_found"
	KeyHasSpecialText   = "has_special_text"
)

var knownKeys = []string{
	KeyTransactionType,
	KeyAccountNumber,
	KeyDate,
	KeyAmount,
	KeySpecialTextFound,
	KeyHasSpecialText,
}

// SlipData contains the structured fields extracted from one slip image.
// The known fields are optional; any other key the service returns is
// kept in Extra so the result view can render it generically.
type SlipData struct {
	TransactionType  *string
	AccountNumber    *string
	Date             *string
	Amount           *string
	SpecialTextFound *string
	HasSpecialText   *bool
	Extra            map[string]any
}

// Field is one key/value pair of a slip result. Value keeps the wire
// type (string, bool, float64 or nil) so formatting rules can apply.
type Field struct {
	Key   string
	Value any
}

// UnmarshalJSON decodes the service payload, pulling known keys into
// typed fields and leaving everything else in Extra. Explicit JSON
// nulls are preserved in Extra as nil values.
func (d *SlipData) UnmarshalJSON(b []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	d.TransactionType = takeString(raw, KeyTransactionType)
	d.AccountNumber = takeString(raw, KeyAccountNumber)
	d.Date = takeString(raw, KeyDate)
	d.Amount = takeString(raw, KeyAmount)
	d.SpecialTextFound = takeString(raw, KeySpecialTextFound)

	if v, ok := raw[KeyHasSpecialText]; ok {
		delete(raw, KeyHasSpecialText)
		if b, ok := v.(bool); ok {
			d.HasSpecialText = &b
		}
	}

	if len(raw) > 0 {
		d.Extra = raw
	} else {
		d.Extra = nil
	}
	return nil
}

// MarshalJSON re-encodes the result with the same keys it arrived with.
func (d *SlipData) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Extra)+len(knownKeys))
	for k, v := range d.Extra {
		out[k] = v
	}
	for _, f := range d.knownFields() {
		out[f.Key] = f.Value
	}
	return json.Marshal(out)
}

// Fields returns every present field as an ordered list: known keys in
// canonical order first, then the remaining keys sorted.
func (d *SlipData) Fields() []Field {
	fields := d.knownFields()

	extras := make([]string, 0, len(d.Extra))
	for k := range d.Extra {
		extras = append(extras, k)
	}
	sort.Strings(extras)
	for _, k := range extras {
		fields = append(fields, Field{Key: k, Value: d.Extra[k]})
	}
	return fields
}

func (d *SlipData) knownFields() []Field {
	fields := make([]Field, 0, len(knownKeys))
	if d.TransactionType != nil {
		fields = append(fields, Field{KeyTransactionType, *d.TransactionType})
	}
	if d.AccountNumber != nil {
		fields = append(fields, Field{KeyAccountNumber, *d.AccountNumber})
	}
	if d.Date != nil {
		fields = append(fields, Field{KeyDate, *d.Date})
	}
	if d.Amount != nil {
		fields = append(fields, Field{KeyAmount, *d.Amount})
	}
	if d.SpecialTextFound != nil {
		fields = append(fields, Field{KeySpecialTextFound, *d.SpecialTextFound})
	}
	if d.HasSpecialText != nil {
		fields = append(fields, Field{KeyHasSpecialText, *d.HasSpecialText})
	}
	return fields
}

// Verified reports whether the slip carried the special handwritten
// marker. A missing has_special_text field counts as not verified.
func (d *SlipData) Verified() bool {
	return d.HasSpecialText != nil && *d.HasSpecialText
}

// takeString removes key from raw and coerces its value to a string.
// Numeric values are kept in their plain decimal form so an amount of
// 100.5 renders as "100.5". Nulls and other types stay in raw for the
// generic renderer.
func takeString(raw map[string]any, key string) *string {
	v, ok := raw[key]
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case string:
		delete(raw, key)
		return &t
	case float64:
		delete(raw, key)
		s := strconv.FormatFloat(t, 'f', -1, 64)
		return &s
	default:
		return nil
	}
}
