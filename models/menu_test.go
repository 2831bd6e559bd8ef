package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const identifyJSON = `{
  "match_type": "exact",
  "confidence": 0.93,
  "canonical": {
    "id": "5f0c7c1e-8d7a-4c53-9a55-2d6b5a8e1f00",
    "name_ko": "김치찌개",
    "name_en": "Kimchi Stew",
    "spice_level": 3,
    "difficulty_score": 2,
    "allergens": ["pork", "", "soy"],
    "typical_price_min": 8000,
    "typical_price_max": 12000,
    "image_url": "https://img.example/kimchi.jpg",
    "nutrition": {"protein": 20, "protein_g": 22.5, "calories": 450},
    "preparation_steps": {"steps": ["boil", {"step": 2, "instruction_en": "simmer"}]}
  },
  "modifiers": [{"text_ko": "왕", "translation_en": "King-size"}]
}`

func TestIdentifyResultDecodes(t *testing.T) {
	var res IdentifyResult
	require.NoError(t, json.Unmarshal([]byte(identifyJSON), &res))

	assert.True(t, res.Matched())
	assert.InDelta(t, 0.93, res.Confidence, 1e-9)
	require.Len(t, res.Modifiers, 1)

	m := res.Canonical
	assert.Equal(t, "김치찌개", m.NameKo())
	assert.Equal(t, 3, m.SpiceLevel())
	assert.Equal(t, 2, m.DifficultyScore())
	assert.Equal(t, []string{"pork", "soy"}, m.Allergens())

	lo, hi := m.PriceRange()
	assert.Equal(t, 8000, lo)
	assert.Equal(t, 12000, hi)

	imgs := m.Images()
	require.Len(t, imgs, 1)
	assert.Equal(t, DefaultImageCredit, imgs[0].Credit)

	assert.Len(t, m.PreparationSteps(), 2)
	assert.InDelta(t, 22.5, NutritionValue(m.Nutrition(), "protein"), 1e-9)
	assert.InDelta(t, 450, NutritionValue(m.Nutrition(), "calories"), 1e-9)
	assert.Zero(t, NutritionValue(nil, "fat"))
}

func TestAIDiscoveryIsNotMatched(t *testing.T) {
	var res IdentifyResult
	require.NoError(t, json.Unmarshal([]byte(`{"match_type":"ai_discovery_needed","confidence":0.2}`), &res))
	assert.False(t, res.Matched())

	var nilRes *IdentifyResult
	assert.False(t, nilRes.Matched())
}

func TestImagesPreferList(t *testing.T) {
	var m Menu
	require.NoError(t, json.Unmarshal([]byte(`{
		"image_url": "legacy.jpg",
		"images": [{"url": "a.jpg", "credit": "Kim"}, "b.jpg", {"credit": "no url"}]
	}`), &m))

	imgs := m.Images()
	assert.Equal(t, []Image{{URL: "a.jpg", Credit: "Kim"}, {URL: "b.jpg"}}, imgs)
}

func TestPreparationStepsFallbacks(t *testing.T) {
	var bare, top Menu
	require.NoError(t, json.Unmarshal([]byte(`{"preparation_steps": ["a", "b", "c"]}`), &bare))
	require.NoError(t, json.Unmarshal([]byte(`{"steps": ["x"]}`), &top))
	assert.Len(t, bare.PreparationSteps(), 3)
	assert.Len(t, top.PreparationSteps(), 1)
}

func TestQueueFilterNormalize(t *testing.T) {
	f := QueueFilter{Status: "bogus", Source: "b2b", Limit: 1000, Offset: -4}.Normalize()
	assert.Equal(t, QueueFilter{Status: StatusAll, Source: SourceB2B, Limit: 50, Offset: 0}, f)
}

func TestQueueItemCreatedTime(t *testing.T) {
	for _, ts := range []string{"2025-01-02T03:04:05.123456", "2025-01-02T03:04:05Z", "2025-01-02 03:04:05"} {
		got, ok := QueueItem{CreatedAt: ts}.CreatedTime()
		assert.True(t, ok, ts)
		assert.Equal(t, 2025, got.Year(), ts)
	}
	_, ok := QueueItem{CreatedAt: "yesterday"}.CreatedTime()
	assert.False(t, ok)
	_, ok = QueueItem{}.CreatedTime()
	assert.False(t, ok)
}

func TestQueueActionValidate(t *testing.T) {
	assert.NoError(t, QueueAction{Action: ActionApprove}.Validate())
	assert.NoError(t, QueueAction{Action: ActionReject}.Validate())
	assert.Error(t, QueueAction{Action: ActionEdit}.Validate())
	assert.NoError(t, QueueAction{Action: ActionEdit, CanonicalMenuID: "m1"}.Validate())
	assert.Error(t, QueueAction{Action: "delete"}.Validate())
}

func TestOCRItemPrice(t *testing.T) {
	var res OCRResult
	require.NoError(t, json.Unmarshal([]byte(`{"menu_items":[
		{"name_ko":"비빔밥","price_ko":"9,000"},
		{"name_ko":"냉면","price_ko":11000},
		{"name_ko":"물"}]}`), &res))
	require.Len(t, res.MenuItems, 3)
	assert.Equal(t, "9,000", res.MenuItems[0].Price())
	assert.Equal(t, "11000", res.MenuItems[1].Price())
	assert.Empty(t, res.MenuItems[2].Price())
}
