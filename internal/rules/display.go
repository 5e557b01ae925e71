package rules

import "github.com/scott198989/securepoint-sub000/internal/domain"

var statusColors = map[domain.Status]string{
	domain.StatusEligible:            "#22C55E",
	domain.StatusPotentiallyEligible: "#F59E0B",
	domain.StatusNotEligible:         "#EF4444",
	domain.StatusIncomplete:          "#6B7280",
}

var statusLabels = map[domain.Status]string{
	domain.StatusEligible:            "Eligible",
	domain.StatusPotentiallyEligible: "Potentially Eligible",
	domain.StatusNotEligible:         "Not Eligible",
	domain.StatusIncomplete:          "Incomplete",
}

var statusIcons = map[domain.Status]string{
	domain.StatusEligible:            "checkmark-circle",
	domain.StatusPotentiallyEligible: "help-circle",
	domain.StatusNotEligible:         "close-circle",
	domain.StatusIncomplete:          "ellipsis-horizontal-circle",
}

var statusSymbols = map[domain.Status]string{
	domain.StatusEligible:            "✓",
	domain.StatusPotentiallyEligible: "?",
	domain.StatusNotEligible:         "✗",
	domain.StatusIncomplete:          "…",
}

// StatusColor maps a status to its hex display color
func StatusColor(s domain.Status) string {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return statusColors[domain.StatusIncomplete]
}

// StatusLabel maps a status to its human label
func StatusLabel(s domain.Status) string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// StatusIcon maps a status to its icon name
func StatusIcon(s domain.Status) string {
	if i, ok := statusIcons[s]; ok {
		return i
	}
	return statusIcons[domain.StatusIncomplete]
}

// StatusSymbol maps a status to a one-character terminal glyph
func StatusSymbol(s domain.Status) string {
	if g, ok := statusSymbols[s]; ok {
		return g
	}
	return "-"
}
