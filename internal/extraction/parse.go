package extraction

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// parseSlipJSON parses the JSON reply from an LLM extractor
func parseSlipJSON(text string) (*SlipData, error) {
	text = strings.TrimSpace(text)

	// Remove markdown code blocks if present
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSpace(text)

	// Find the JSON object boundaries - look for first { and last }
	startIdx := strings.Index(text, "{")
	if startIdx == -1 {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	endIdx := strings.LastIndex(text, "}")
	if endIdx == -1 || endIdx < startIdx {
		return nil, fmt.Errorf("invalid JSON object in response")
	}

	text = text[startIdx : endIdx+1]

	var data SlipData
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		return nil, fmt.Errorf("unmarshaling json: %w", err)
	}

	if data.Date != nil {
		normalized := normalizeDate(*data.Date)
		data.Date = &normalized
	}

	return &data, nil
}

// normalizeDate converts common slip date formats to YYYY-MM-DD. A date
// that matches no known format is returned unchanged and rendered
// verbatim.
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	formats := []string{
		"2006-01-02",
		"2006/01/02",
		"02/01/2006",
		"01/02/2006",
		"02-01-2006",
	}
	for _, format := range formats {
		if d, err := time.Parse(format, s); err == nil {
			return d.Format("2006-01-02")
		}
	}
	return s
}
