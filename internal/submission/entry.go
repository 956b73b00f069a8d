package submission

import (
	"time"

	"github.com/slipcheck/slipcheck/internal/extraction"
)

// Entry statuses derived from the special-text check.
const (
	StatusVerified  = "Verified"
	StatusProcessed = "Processed"
)

// LogEntry is one historical submission record. Entries are created
// exactly once per successful extraction, never mutated, and only ever
// removed by clearing the whole log.
type LogEntry struct {
	ID              string `json:"id"`
	Timestamp       string `json:"timestamp"`
	FileName        string `json:"file_name"`
	TransactionType string `json:"transaction_type"`
	AccountNumber   string `json:"account_number"`
	Date            string `json:"date"`
	Amount          string `json:"amount"`
	SpecialText     string `json:"special_text"`
	Status          string `json:"status"`
}

// NewLogEntry derives a log entry from a successful extraction and the
// submitted file's display name. Absent fields display as "N/A"; the
// status is "Verified" when the special handwritten marker was found,
// "Processed" otherwise.
func NewLogEntry(id string, at time.Time, fileName string, data *extraction.SlipData) LogEntry {
	status := StatusProcessed
	if data.Verified() {
		status = StatusVerified
	}

	return LogEntry{
		ID:              id,
		Timestamp:       at.Format("1/2/2006, 3:04:05 PM"),
		FileName:        fileName,
		TransactionType: displayValue(data.TransactionType),
		AccountNumber:   displayValue(data.AccountNumber),
		Date:            displayValue(data.Date),
		Amount:          displayValue(data.Amount),
		SpecialText:     displayValue(data.SpecialTextFound),
		Status:          status,
	}
}

func displayValue(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}
