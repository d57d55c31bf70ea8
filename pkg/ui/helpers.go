package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/skyeng-labs/skygraph/pkg/model"
)

// truncate shortens s to at most w display columns, appending an ellipsis
// when anything was cut.
func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= w {
		return s
	}
	return runewidth.Truncate(s, w, "…")
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

func kindLabel(k model.Kind) string {
	if k == model.KindStandard {
		return "standard"
	}
	return "requirement"
}

func statusLabel(s model.Status) string {
	switch s {
	case model.StatusCompliant:
		return "compliant"
	case model.StatusPartial:
		return "partially compliant"
	case model.StatusNonCompliant:
		return "non-compliant"
	default:
		return "unknown"
	}
}

func riskLabel(r model.Risk) string {
	switch r {
	case model.RiskHigh:
		return "high"
	case model.RiskMedium:
		return "medium"
	case model.RiskLow:
		return "low"
	default:
		return ""
	}
}
