package render

import (
	"html/template"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FuncMap holds the helpers available to every template.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"won":             Won,
		"number":          Number,
		"percent":         Percent,
		"spiceMeter":      SpiceMeter,
		"spiceEmoji":      SpiceEmoji,
		"difficultyEmoji": DifficultyEmoji,
		"allergenEmoji":   AllergenEmoji,
		"dietaryEmoji":    DietaryEmoji,
		"dietaryLabel":    DietaryLabel,
		"upper":           strings.ToUpper,
	}
}

// Won formats an amount as Korean won with digit grouping: ₩12,000.
func Won(amount float64) string {
	p := message.NewPrinter(language.Korean)
	if amount == math.Trunc(amount) {
		return p.Sprintf("₩%d", int64(amount))
	}
	return p.Sprintf("₩%.2f", amount)
}

// Number formats v with digit grouping; whole numbers print without decimals.
func Number(v float64) string {
	p := message.NewPrinter(language.English)
	if v == math.Trunc(v) {
		return p.Sprintf("%d", int64(v))
	}
	return p.Sprintf("%.1f", v)
}

// Percent converts a 0-1 ratio to a rounded percentage.
func Percent(ratio float64) int {
	return int(math.Round(ratio * 100))
}
