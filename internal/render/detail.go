package render

import (
	"fmt"

	"github.com/pandamasta/menuguide/localize"
	"github.com/pandamasta/menuguide/models"
)

// Detail page tabs.
const (
	TabDescription = "description"
	TabPreparation = "preparation"
	TabNutrition   = "nutrition"
	TabTips        = "tips"
)

var tabs = []string{TabDescription, TabPreparation, TabNutrition, TabTips}

// ParseTab returns tab when it names a detail tab, else the description tab.
func ParseTab(tab string) string {
	for _, t := range tabs {
		if t == tab {
			return t
		}
	}
	return TabDescription
}

type TabView struct {
	Key      string
	LabelKey string
	URL      string
	Active   bool
}

type RegionalVariant struct {
	Region      string
	LocalName   string
	Differences string
}

type FlavorBar struct {
	LabelKey string
	Emoji    string
	Value    float64
	Percent  int
}

type Step struct {
	Number int
	Text   string
}

type NutritionCard struct {
	LabelKey string
	Emoji    string
	Value    string
	Unit     string
}

type Tip struct {
	LabelKey string
	Emoji    string
	Text     string
}

type SimilarDish struct {
	NameKo   string
	Name     string
	ImageURL string
	URL      string
	Legacy   string
}

// DetailView is everything the menu detail page shows.
type DetailView struct {
	ID     string
	NameKo string
	Name   string

	SpiceLevel      int
	SpiceEmoji      string
	Difficulty      int
	DifficultyEmoji string
	Price           string

	Images    []models.Image
	Tabs      []TabView
	ActiveTab string

	// description tab
	LongDescription    string
	CulturalBackground string
	RegionalVariants   []RegionalVariant
	Flavor             []FlavorBar
	Explanation        string
	CulturalContext    string
	Ingredients        []string
	Allergens          []Tag
	Dietary            []Tag

	Steps          []Step
	Nutrition      []NutritionCard
	HasNutrition   bool
	HealthBenefits []string
	Tips           []Tip
	Similar        []SimilarDish
}

// BuildDetailView resolves a canonical menu for the detail page.
func BuildDetailView(m *models.Menu, activeTab string, r localize.Resolver) DetailView {
	v := DetailView{
		ID:        m.ID(),
		NameKo:    m.NameKo(),
		Name:      r.Field(m.Fields, "name"),
		ActiveTab: ParseTab(activeTab),
		Images:    m.Images(),
	}

	v.SpiceLevel = m.SpiceLevel()
	v.SpiceEmoji = SpiceEmoji(v.SpiceLevel)
	v.Difficulty = max(1, m.DifficultyScore())
	v.DifficultyEmoji = DifficultyEmoji(v.Difficulty)
	if lo, hi := m.PriceRange(); lo > 0 {
		v.Price = Won(float64(lo))
		if hi > 0 {
			v.Price += " - " + Won(float64(hi))
		}
	}

	for _, t := range tabs {
		v.Tabs = append(v.Tabs, TabView{
			Key:      t,
			LabelKey: "tab." + t,
			URL:      DetailURL(v.ID, v.NameKo) + "&tab=" + t,
			Active:   t == v.ActiveTab,
		})
	}

	buildDescription(&v, m, r)
	v.Steps = buildSteps(m.PreparationSteps(), r)
	buildNutrition(&v, m)
	v.Tips = buildTips(m.VisitorTips(), r)
	v.Similar = buildSimilar(m.SimilarDishes(), r)
	return v
}

func buildDescription(v *DetailView, m *models.Menu, r localize.Resolver) {
	// explanation_long carries the fuller ja/zh translations
	if r.Lang != localize.English {
		if long := models.AsRecord(m.Fields["explanation_long"]); long != nil {
			v.LongDescription = models.String(long, r.Lang.String())
		}
	}
	if v.LongDescription == "" {
		v.LongDescription = r.Field(m.Fields, "description_long")
	}
	v.CulturalBackground = r.Value(m.Fields["cultural_background"])

	for _, rv := range m.RegionalVariants() {
		v.RegionalVariants = append(v.RegionalVariants, RegionalVariant{
			Region:      r.Value(rv["region"]),
			LocalName:   r.Value(rv["local_name"]),
			Differences: r.Value(rv["differences"]),
		})
	}
	v.Flavor = buildFlavor(m.FlavorProfile())

	if v.LongDescription == "" && v.CulturalBackground == "" && len(v.RegionalVariants) == 0 && len(v.Flavor) == 0 {
		v.Explanation = r.Field(m.Fields, "explanation_long")
	}
	v.CulturalContext = r.Field(m.Fields, "cultural_context")

	for _, ing := range m.MainIngredients() {
		if name := r.Ingredient(ing); name != "" {
			v.Ingredients = append(v.Ingredients, name)
		}
	}
	v.Allergens = allergenTags(m.Allergens())
	for _, tag := range m.DietaryTags() {
		v.Dietary = append(v.Dietary, Tag{Emoji: DietaryEmoji(tag), Text: DietaryLabel(tag)})
	}
}

var flavors = []struct {
	key, label, emoji string
}{
	{"spiciness", "flavor.spiciness", "🌶️"},
	{"sweetness", "flavor.sweetness", "🍯"},
	{"saltiness", "flavor.saltiness", "🧂"},
	{"umami", "flavor.umami", "🍄"},
	{"sour", "flavor.sourness", "🍋"},
	{"bitter", "flavor.bitterness", "☕"},
}

// flavor scores are out of 5; zero scores are hidden
func buildFlavor(profile localize.Record) []FlavorBar {
	if profile == nil {
		return nil
	}
	var bars []FlavorBar
	for _, f := range flavors {
		val := models.Number(profile, f.key)
		if val <= 0 {
			continue
		}
		bars = append(bars, FlavorBar{
			LabelKey: f.label,
			Emoji:    f.emoji,
			Value:    val,
			Percent:  clamp(Percent(val/5), 0, 100),
		})
	}
	return bars
}

func buildSteps(raw []any, r localize.Resolver) []Step {
	steps := make([]Step, 0, len(raw))
	for i, s := range raw {
		switch step := s.(type) {
		case string:
			steps = append(steps, Step{Number: i + 1, Text: step})
		case map[string]any:
			rec := localize.Record(step)
			n := int(models.Number(rec, "step"))
			if n == 0 {
				n = int(models.Number(rec, "number"))
			}
			if n == 0 {
				n = i + 1
			}
			text := r.Field(rec, "instruction")
			if text == "" {
				text = r.Value(rec["description"])
			}
			steps = append(steps, Step{Number: n, Text: text})
		}
	}
	return steps
}

var nutrients = []struct {
	key, label, unit, emoji string
}{
	{"calories", "nutrition.calories", "kcal", "🔥"},
	{"protein", "nutrition.protein", "g", "💪"},
	{"fat", "nutrition.fat", "g", "🧈"},
	{"carbs", "nutrition.carbohydrates", "g", "🌾"},
}

func buildNutrition(v *DetailView, m *models.Menu) {
	n := m.Nutrition()
	v.HealthBenefits = m.HealthBenefits()
	if n == nil {
		return
	}
	v.HasNutrition = true
	for _, nu := range nutrients {
		value := "-"
		if val := models.NutritionValue(n, nu.key); val != 0 {
			value = Number(val)
		}
		v.Nutrition = append(v.Nutrition, NutritionCard{
			LabelKey: nu.label,
			Emoji:    nu.emoji,
			Value:    value,
			Unit:     nu.unit,
		})
	}
}

var tipKinds = []struct {
	key, label, emoji string
}{
	{"ordering", "section.ordering", "📝"},
	{"eating", "section.eating", "🍴"},
	{"pairing", "section.pairing", "🍺"},
}

func buildTips(tips localize.Record, r localize.Resolver) []Tip {
	if tips == nil {
		return nil
	}
	var out []Tip
	for _, k := range tipKinds {
		text := r.Value(tips[k.key])
		if text == "" {
			text = r.Field(tips, k.key)
		}
		if text == "" {
			continue
		}
		out = append(out, Tip{LabelKey: k.label, Emoji: k.emoji, Text: text})
	}
	return out
}

// similar dishes are legacy strings or {id, name_ko, name_en, image_url}
func buildSimilar(raw []any, r localize.Resolver) []SimilarDish {
	var out []SimilarDish
	for _, d := range raw {
		switch dish := d.(type) {
		case string:
			if dish != "" {
				out = append(out, SimilarDish{Legacy: dish})
			}
		case map[string]any:
			rec := localize.Record(dish)
			sd := SimilarDish{
				NameKo:   models.String(rec, "name_ko"),
				Name:     r.Field(rec, "name"),
				ImageURL: nonNull(models.String(rec, "image_url")),
			}
			if id := nonNull(fmt.Sprint(rec["id"])); rec["id"] != nil && id != "" {
				sd.URL = DetailURL(id, sd.NameKo)
			}
			out = append(out, sd)
		}
	}
	return out
}

// the backend sometimes serialises missing values as the string "null"
func nonNull(s string) string {
	if s == "null" {
		return ""
	}
	return s
}
