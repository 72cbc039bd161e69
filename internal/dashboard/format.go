package dashboard

import (
	"strings"

	"github.com/bobmcallan/sharedash/internal/models"
)

// SignalBadge is how a signal is rendered: an arrow plus a label and a CSS class.
type SignalBadge struct {
	Arrow string `json:"arrow"`
	Label string `json:"label"`
	Class string `json:"class"`
}

// Text returns the arrow and label joined, or just the label for unknown signals.
func (b SignalBadge) Text() string {
	if b.Arrow == "" {
		return b.Label
	}
	return b.Arrow + " " + b.Label
}

// Badge classifies a raw signal value.
func Badge(signal string) SignalBadge {
	switch strings.ToUpper(signal) {
	case models.SignalUp:
		return SignalBadge{Arrow: "🟢⬆", Label: models.SignalUp, Class: "signal-up"}
	case models.SignalDown:
		return SignalBadge{Arrow: "🔴⬇", Label: models.SignalDown, Class: "signal-down"}
	}
	return SignalBadge{Label: strings.ToUpper(signal), Class: "signal-unknown"}
}
