package render

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandamasta/menuguide/localize"
	"github.com/pandamasta/menuguide/models"
)

const bibimbapID = "0d7e2f40-5a5b-4a43-8a8e-51f1d3c0b7a2"

const bibimbapJSON = `{
  "id": "` + bibimbapID + `",
  "name_ko": "비빔밥",
  "name_en": "Bibimbap",
  "spice_level": 1,
  "difficulty_score": 2,
  "typical_price_min": 9000,
  "typical_price_max": 12000,
  "description_long": "Rice bowl with vegetables.",
  "explanation_long": {"ja": "ビビンバは混ぜご飯です。"},
  "cultural_background": {"en": "Royal cuisine", "ko": "궁중 음식"},
  "cultural_context": {"en": "Eaten year round"},
  "regional_variants": [{"region": "Jeonju", "local_name": "전주비빔밥", "differences": {"en": "Beef tartare"}}],
  "flavor_profile": {"spiciness": 2, "sweetness": 0, "umami": 4},
  "main_ingredients": ["rice", {"en": "egg", "ja": "卵", "ko": "계란"}],
  "allergens": ["egg"],
  "dietary_tags": ["vegetarian", "unknown_tag"],
  "preparation_steps": {"steps": [
    "Mix well",
    {"step": 2, "instruction_en": "Add gochujang", "instruction_ja": "コチュジャンを加える"},
    {"description": {"en": "Enjoy"}}
  ]},
  "nutrition_detail": {"calories": 550, "protein_g": 18.5},
  "health_benefits": ["Balanced"],
  "visitor_tips": {"ordering": {"en": "Ask for less spicy"}, "eating_en": "Mix everything"},
  "similar_dishes": [
    "Dolsot bibimbap",
    {"id": "abc", "name_ko": "돌솥비빔밥", "name_en": "Stone pot bibimbap", "image_url": "null"},
    {"id": null, "name_ko": "회덮밥"}
  ]
}`

func bibimbap(t *testing.T) *models.Menu {
	t.Helper()
	var m models.Menu
	require.NoError(t, json.Unmarshal([]byte(bibimbapJSON), &m))
	return &m
}

func TestBuildDetailViewEnglish(t *testing.T) {
	v := BuildDetailView(bibimbap(t), "", localize.NewResolver(localize.English))

	assert.Equal(t, "비빔밥", v.NameKo)
	assert.Equal(t, "Bibimbap", v.Name)
	assert.Equal(t, "🟡", v.SpiceEmoji)
	assert.Equal(t, "😊", v.DifficultyEmoji)
	assert.Equal(t, "₩9,000 - ₩12,000", v.Price)
	assert.Empty(t, v.Images)

	assert.Equal(t, TabDescription, v.ActiveTab)
	require.Len(t, v.Tabs, 4)
	assert.True(t, v.Tabs[0].Active)
	assert.Equal(t, "/menu?id="+bibimbapID+"&tab=nutrition", v.Tabs[2].URL)

	assert.Equal(t, "Rice bowl with vegetables.", v.LongDescription)
	assert.Equal(t, "Royal cuisine", v.CulturalBackground)
	assert.Equal(t, []RegionalVariant{{Region: "Jeonju", LocalName: "전주비빔밥", Differences: "Beef tartare"}}, v.RegionalVariants)
	assert.Equal(t, []FlavorBar{
		{LabelKey: "flavor.spiciness", Emoji: "🌶️", Value: 2, Percent: 40},
		{LabelKey: "flavor.umami", Emoji: "🍄", Value: 4, Percent: 80},
	}, v.Flavor)
	assert.Empty(t, v.Explanation)
	assert.Equal(t, "Eaten year round", v.CulturalContext)
	assert.Equal(t, []string{"rice", "egg"}, v.Ingredients)
	assert.Equal(t, []Tag{{Emoji: "🥚", Text: "egg"}}, v.Allergens)
	assert.Equal(t, []Tag{{Emoji: "🥗", Text: "vegetarian"}, {Emoji: "🏷️", Text: "unknown tag"}}, v.Dietary)

	assert.Equal(t, []Step{{1, "Mix well"}, {2, "Add gochujang"}, {3, "Enjoy"}}, v.Steps)

	assert.True(t, v.HasNutrition)
	require.Len(t, v.Nutrition, 4)
	assert.Equal(t, "550", v.Nutrition[0].Value)
	assert.Equal(t, "18.5", v.Nutrition[1].Value)
	assert.Equal(t, "-", v.Nutrition[2].Value)
	assert.Equal(t, []string{"Balanced"}, v.HealthBenefits)

	assert.Equal(t, []Tip{
		{LabelKey: "section.ordering", Emoji: "📝", Text: "Ask for less spicy"},
		{LabelKey: "section.eating", Emoji: "🍴", Text: "Mix everything"},
	}, v.Tips)

	require.Len(t, v.Similar, 3)
	assert.Equal(t, "Dolsot bibimbap", v.Similar[0].Legacy)
	assert.Equal(t, "/menu?id=abc", v.Similar[1].URL)
	assert.Empty(t, v.Similar[1].ImageURL)
	assert.Equal(t, "Stone pot bibimbap", v.Similar[1].Name)
	assert.Empty(t, v.Similar[2].URL)
}

func TestBuildDetailViewJapanese(t *testing.T) {
	v := BuildDetailView(bibimbap(t), TabPreparation, localize.NewResolver(localize.Japanese))

	assert.Equal(t, TabPreparation, v.ActiveTab)
	assert.Equal(t, "ビビンバは混ぜご飯です。", v.LongDescription)
	assert.Equal(t, "Royal cuisine", v.CulturalBackground)
	assert.Equal(t, []string{"rice", "卵"}, v.Ingredients)
	assert.Equal(t, "コチュジャンを加える", v.Steps[1].Text)
}

func TestBuildDetailViewExplanationFallback(t *testing.T) {
	var m models.Menu
	require.NoError(t, json.Unmarshal([]byte(`{"name_ko":"떡볶이","explanation_long":{"en":"Spicy rice cakes"}}`), &m))

	v := BuildDetailView(&m, "bogus", localize.NewResolver(localize.Chinese))
	assert.Equal(t, TabDescription, v.ActiveTab)
	assert.Empty(t, v.LongDescription)
	assert.Equal(t, "Spicy rice cakes", v.Explanation)
	assert.Empty(t, v.Price)
	assert.False(t, v.HasNutrition)
	assert.Equal(t, "/menu?"+"name=%EB%96%A1%EB%B3%B6%EC%9D%B4&tab=tips", v.Tabs[3].URL)
}

func TestParseTab(t *testing.T) {
	assert.Equal(t, TabTips, ParseTab("tips"))
	assert.Equal(t, TabDescription, ParseTab(""))
	assert.Equal(t, TabDescription, ParseTab("TIPS"))
}
