package render

import "strings"

var spiceEmojis = []string{"🟢", "🟡", "🟠", "🔴", "🔥"}

// SpiceEmoji is the single badge for a spice level 0-4; higher levels stay at 🔥.
func SpiceEmoji(level int) string {
	return spiceEmojis[clamp(level, 0, len(spiceEmojis)-1)]
}

// SpiceMeter repeats the level's emoji once per level, at least once.
func SpiceMeter(level int) string {
	return strings.Repeat(SpiceEmoji(level), max(1, level))
}

// difficulty 1-5
var difficultyEmojis = []string{"😊", "😊", "🤔", "🤔", "😰"}

func DifficultyEmoji(score int) string {
	return difficultyEmojis[clamp(score-1, 0, len(difficultyEmojis)-1)]
}

var allergenEmojis = map[string]string{
	"peanut":    "🥜",
	"peanuts":   "🥜",
	"tree nuts": "🌰",
	"tree_nuts": "🌰",
	"soy":       "🫘",
	"wheat":     "🌾",
	"milk":      "🥛",
	"egg":       "🥚",
	"eggs":      "🥚",
	"fish":      "🐟",
	"shellfish": "🦐",
	"beef":      "🥩",
	"pork":      "🐷",
	"chicken":   "🐔",
	"sesame":    "🌱",
}

func AllergenEmoji(allergen string) string {
	if e, ok := allergenEmojis[strings.ToLower(strings.TrimSpace(allergen))]; ok {
		return e
	}
	return "⚠️"
}

var dietaryEmojis = map[string]string{
	"contains_pork": "🐷",
	"contains_beef": "🥩",
	"spicy":         "🌶️",
	"mild":          "🟢",
	"vegan":         "🌱",
	"vegetarian":    "🥗",
	"gluten_free":   "🌾❌",
	"halal":         "☪️",
}

func DietaryEmoji(tag string) string {
	if e, ok := dietaryEmojis[tag]; ok {
		return e
	}
	return "🏷️"
}

// DietaryLabel turns a tag like gluten_free into "gluten free".
func DietaryLabel(tag string) string {
	return strings.ReplaceAll(tag, "_", " ")
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
