package extraction

import (
	"regexp"
	"strings"
)

// Transaction type values recognized on bank slips.
const (
	TypeCDM         = "CDM"
	TypeATMTransfer = "ATM_TRANSFER"
	TypeUnknown     = "UNKNOWN"
)

// Special handwritten markers that verify a slip.
const (
	MarkerHPWin    = "HPWIN"
	MarkerHPWinVIP = "HPWINVIP"
)

var cdmKeywords = []string{
	"cdm", "cash deposit", "atm deposit", "deposit machine", "cash in",
	"deposit slip", "cash deposit machine", "deposit receipt",
	"deposit confirmation", "deposit successful", "deposit completed",
	"deposit amount", "amount deposited",
}

var atmTransferKeywords = []string{
	"atm transfer", "atm withdrawal", "debit transfer", "cash transfer",
	"withdrawal", "fund transfer", "electronic transfer", "money transfer",
	"cash withdrawal", "amount withdrawn", "transfer successful",
	"withdrawal successful", "transfer completed", "withdrawal completed",
	"transfer amount", "withdrawal amount",
}

// Handwritten markers come back from OCR with letter substitutions
// ('1'/'l' for 'i', 'vv' for 'w') and stray spacing, so detection runs
// over a tolerant pattern set. The VIP patterns are checked first: when
// both markers could match, HPWINVIP wins.
var hpWinVIPPatterns = compilePatterns([]string{
	`hpw[il1]nv[il1]p`,
	`hpvv[il1]nv[il1]p`,
	`hp[\s-]*w[il1]n[\s-]*v[il1]p`,
	`hpw[il1]n[-_]?v[il1]p`,
	`h\s*p\s*w\s*[il1]\s*n\s*v\s*[il1]\s*p`,
	`[hn]pw[il1]nv[il1]p`,
	`hpw[il1]nv[il1][pb]`,
	`hpw[il1]n.{0,5}v[il1]p`,
	`hp.{0,5}win.{0,5}vip`,
})

var hpWinPatterns = compilePatterns([]string{
	`hpw[il1]n`,
	`hpvv[il1]n`,
	`hp[\s-]*w[il1]n`,
	`h\s*p\s*w\s*[il1]\s*n`,
	`[hn]pw[il1]n`,
	`h[bp]w[il1]n`,
	`hpw[il1][nm]`,
	`h.{0,2}p.{0,2}w.{0,2}[il1].{0,2}n`,
	`hp.{0,5}win`,
})

var machineIDPattern = regexp.MustCompile(`machine\s*id|terminal\s*id|atm\s*id|transaction\s*id|receipt\s*no|receipt\s*number`)

func compilePatterns(patterns []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		compiled[i] = regexp.MustCompile(p)
	}
	return compiled
}

// ClassifyTransactionType identifies whether raw slip text came from a
// cash deposit machine or an ATM transfer/withdrawal.
func ClassifyTransactionType(text string) string {
	text = strings.ToLower(text)

	for _, keyword := range cdmKeywords {
		if strings.Contains(text, keyword) {
			return TypeCDM
		}
	}
	for _, keyword := range atmTransferKeywords {
		if strings.Contains(text, keyword) {
			return TypeATMTransfer
		}
	}

	// A machine or terminal ID means the slip is one of the two; fall
	// back to deposit/withdraw wording to pick which.
	if machineIDPattern.MatchString(text) {
		if strings.Contains(text, "deposit") || strings.Contains(text, "cash") || strings.Contains(text, "credit") {
			return TypeCDM
		}
		if strings.Contains(text, "withdraw") || strings.Contains(text, "debit") || strings.Contains(text, "transfer") {
			return TypeATMTransfer
		}
	}

	return TypeUnknown
}

// DetectSpecialText scans raw slip text for the handwritten HPWINVIP or
// HPWIN markers, tolerating common OCR misreads. It returns the
// canonical marker and whether one was found.
func DetectSpecialText(text string) (string, bool) {
	text = strings.ToLower(text)

	for _, pattern := range hpWinVIPPatterns {
		if pattern.MatchString(text) {
			return MarkerHPWinVIP, true
		}
	}
	for _, pattern := range hpWinPatterns {
		if pattern.MatchString(text) {
			return MarkerHPWin, true
		}
	}
	return "", false
}
