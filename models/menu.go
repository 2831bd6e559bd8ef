package models

import (
	"encoding/json"

	"github.com/pandamasta/menuguide/localize"
)

// MatchTypeAIDiscovery marks an identify result with no canonical match yet.
const MatchTypeAIDiscovery = "ai_discovery_needed"

// Menu is a canonical menu snapshot as returned by the identify and detail
// endpoints. The raw record is kept for localized field resolution.
type Menu struct {
	Fields localize.Record
}

func (m *Menu) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &m.Fields)
}

func (m Menu) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Fields)
}

func (m *Menu) ID() string { return str(m.Fields, "id") }
func (m *Menu) NameKo() string { return str(m.Fields, "name_ko") }
func (m *Menu) SpiceLevel() int { return integer(m.Fields, "spice_level") }
func (m *Menu) DifficultyScore() int { return integer(m.Fields, "difficulty_score") }
func (m *Menu) Allergens() []string { return stringList(m.Fields, "allergens") }
func (m *Menu) DietaryTags() []string { return stringList(m.Fields, "dietary_tags") }
func (m *Menu) HealthBenefits() []string { return stringList(m.Fields, "health_benefits") }
func (m *Menu) MainIngredients() []any { return list(m.Fields, "main_ingredients") }
func (m *Menu) SimilarDishes() []any { return list(m.Fields, "similar_dishes") }
func (m *Menu) ImageURL() string { return str(m.Fields, "image_url") }

// PriceRange returns the typical price in won; zero means unknown.
func (m *Menu) PriceRange() (min, max int) {
	return integer(m.Fields, "typical_price_min"), integer(m.Fields, "typical_price_max")
}

// Image is one photo of a dish with its attribution.
type Image struct {
	URL    string
	Credit string
}

// DefaultImageCredit attributes legacy single-image records.
const DefaultImageCredit = "Wikimedia Commons"

// Images returns the image list, falling back to the legacy image_url field.
func (m *Menu) Images() []Image {
	var out []Image
	for _, v := range list(m.Fields, "images") {
		switch img := v.(type) {
		case string:
			if img != "" {
				out = append(out, Image{URL: img})
			}
		case map[string]any:
			rec := localize.Record(img)
			if u := str(rec, "url"); u != "" {
				out = append(out, Image{URL: u, Credit: str(rec, "credit")})
			}
		}
	}
	if len(out) == 0 && m.ImageURL() != "" {
		out = append(out, Image{URL: m.ImageURL(), Credit: DefaultImageCredit})
	}
	return out
}

// PreparationSteps accepts preparation_steps.steps, steps, or a bare
// preparation_steps array. Items are strings or step objects.
func (m *Menu) PreparationSteps() []any {
	if prep := sub(m.Fields, "preparation_steps"); prep != nil {
		if steps := list(prep, "steps"); len(steps) > 0 {
			return steps
		}
	}
	if steps := list(m.Fields, "steps"); len(steps) > 0 {
		return steps
	}
	return list(m.Fields, "preparation_steps")
}

// Nutrition returns nutrition_detail, or the older nutrition object.
func (m *Menu) Nutrition() localize.Record {
	if n := sub(m.Fields, "nutrition_detail"); n != nil {
		return n
	}
	return sub(m.Fields, "nutrition")
}

func (m *Menu) VisitorTips() localize.Record { return sub(m.Fields, "visitor_tips") }
func (m *Menu) FlavorProfile() localize.Record { return sub(m.Fields, "flavor_profile") }

// RegionalVariants returns the object entries of regional_variants.
func (m *Menu) RegionalVariants() []localize.Record {
	var out []localize.Record
	for _, v := range list(m.Fields, "regional_variants") {
		if rec := AsRecord(v); rec != nil {
			out = append(out, rec)
		}
	}
	return out
}

// IdentifyResult is the response of the identify endpoint.
type IdentifyResult struct {
	MatchType  string            `json:"match_type"`
	Canonical  *Menu             `json:"canonical"`
	Modifiers  []localize.Record `json:"modifiers"`
	Confidence float64           `json:"confidence"`
}

// Matched reports whether the result carries a canonical menu.
func (r *IdentifyResult) Matched() bool {
	return r != nil && r.Canonical != nil && r.MatchType != MatchTypeAIDiscovery
}

// NutritionValue reads a nutrient preferring the *_g key (protein_g) over
// the bare one (protein). Zero means unknown.
func NutritionValue(n localize.Record, key string) float64 {
	if n == nil {
		return 0
	}
	if v := num(n, key+"_g"); v != 0 {
		return v
	}
	return num(n, key)
}

// Number reads a numeric field from any record.
func Number(rec localize.Record, key string) float64 {
	return num(rec, key)
}

// String reads a string field from any record.
func String(rec localize.Record, key string) string {
	return str(rec, key)
}
