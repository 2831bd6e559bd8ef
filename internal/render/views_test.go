package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandamasta/menuguide/localize"
	"github.com/pandamasta/menuguide/models"
)

const kimchiID = "5f0c7c1e-8d7a-4c53-9a55-2d6b5a8e1f00"

const kimchiJSON = `{
  "match_type": "exact",
  "confidence": 0.93,
  "canonical": {
    "id": "` + kimchiID + `",
    "name_ko": "김치찌개",
    "name_en": "Kimchi Stew (Jjigae)",
    "name_ja": "キムチチゲ",
    "explanation_short": {"en": "Spicy kimchi stew", "ja": "辛いキムチ鍋"},
    "spice_level": 3,
    "allergens": ["pork", "mystery"],
    "image_url": "https://img.example/kimchi.jpg"
  },
  "modifiers": [{"text_ko": "왕", "translation_en": "King-size", "translation_ja": "特大"}]
}`

func identifyResult(t *testing.T, raw string) *models.IdentifyResult {
	t.Helper()
	var res models.IdentifyResult
	require.NoError(t, json.Unmarshal([]byte(raw), &res))
	return &res
}

// labels echoes keys so tests can see which label was asked for
func labels(key string, args ...any) string {
	if len(args) > 0 {
		return fmt.Sprintf("%s:%v", key, args[0])
	}
	return key
}

func TestBuildMenuCardJapanese(t *testing.T) {
	res := SearchResult{Input: "왕김치찌개", Result: identifyResult(t, kimchiJSON)}
	card := BuildMenuCard(res, localize.NewResolver(localize.Japanese))

	assert.False(t, card.Failed)
	assert.False(t, card.Discovery)
	assert.Equal(t, "김치찌개", card.NameKo)
	assert.Equal(t, "キムチチゲ", card.Name)
	assert.Equal(t, " (JA)", card.LangSuffix)
	assert.Equal(t, "特大 キムチチゲ", card.ComposedName)
	assert.Equal(t, "辛いキムチ鍋", card.Description)
	assert.Equal(t, "🔴🔴🔴", card.SpiceMeter)
	assert.Equal(t, 1, card.Difficulty)
	assert.Equal(t, "😊", card.DifficultyEmoji)
	assert.Equal(t, []Tag{{Emoji: "🐷", Text: "pork"}, {Emoji: "⚠️", Text: "mystery"}}, card.Allergens)
	assert.Equal(t, []ModifierView{{Ko: "왕", Text: "特大"}}, card.Modifiers)
	assert.Equal(t, 93, card.ConfidencePct)
	assert.Equal(t, "high", card.ConfidenceClass)
	assert.Equal(t, "exact", card.MatchType)
	assert.Equal(t, "/menu?id="+kimchiID, card.DetailURL)
	assert.Equal(t, models.DefaultImageCredit, card.ImageCredit)
}

func TestBuildMenuCardEnglish(t *testing.T) {
	res := SearchResult{Input: "왕김치찌개", Result: identifyResult(t, kimchiJSON)}
	card := BuildMenuCard(res, localize.NewResolver(localize.English))

	assert.Equal(t, "Kimchi Stew (Jjigae)", card.Name)
	assert.Empty(t, card.LangSuffix)
	assert.Equal(t, "King-size Kimchi Stew", card.ComposedName)
	assert.Equal(t, "Spicy kimchi stew", card.Description)
}

func TestBuildMenuCardStates(t *testing.T) {
	r := localize.NewResolver(localize.English)

	failed := BuildMenuCard(SearchResult{Input: "실패", Err: errors.New("timeout")}, r)
	assert.True(t, failed.Failed)
	assert.Equal(t, "실패", failed.Input)

	discovery := BuildMenuCard(SearchResult{Input: "신메뉴", Result: &models.IdentifyResult{MatchType: models.MatchTypeAIDiscovery}}, r)
	assert.True(t, discovery.Discovery)
	assert.Empty(t, discovery.Name)
}

func TestComposeNameWithoutModifiers(t *testing.T) {
	assert.Equal(t, "Bibimbap", ComposeName("Bibimbap (Mixed rice)", nil, localize.NewResolver(localize.English)))
}

func TestConfidenceBands(t *testing.T) {
	assert.Equal(t, "high", CardConfidence(0.9))
	assert.Equal(t, "mid", CardConfidence(0.89))
	assert.Equal(t, "mid", CardConfidence(0.7))
	assert.Equal(t, "low", CardConfidence(0.69))

	assert.Equal(t, "high", ReviewConfidence(0.85))
	assert.Equal(t, "high", ReviewConfidence(0.849)) // rounds to 85%
	assert.Equal(t, "mid", ReviewConfidence(0.65))
	assert.Equal(t, "low", ReviewConfidence(0.64))

	assert.Equal(t, "mid", reviewBand(0.849))
	assert.Equal(t, "low", reviewBand(0.649))
}

func TestDetailURL(t *testing.T) {
	assert.Equal(t, "/menu?id=abc", DetailURL("abc", "김치찌개"))
	assert.Equal(t, "/menu?"+url.Values{"name": {"김치찌개"}}.Encode(), DetailURL("", "김치찌개"))
}

func TestBuildQueueItem(t *testing.T) {
	now := time.Date(2026, 10, 17, 10, 5, 0, 0, time.UTC)
	item := models.QueueItem{
		ID:         "q1",
		MenuNameKo: "왕돈까스",
		Source:     "b2c",
		CreatedAt:  "2026-10-17T10:00:00",
		Confidence: 0.72,
		Status:     models.StatusPending,
		MatchedCanonical: &models.MatchedCanonical{
			ID: "c1", NameKo: "돈까스", NameEn: "Pork cutlet",
		},
	}

	v := BuildQueueItem(item, now, labels)
	assert.Equal(t, "q1", v.ID)
	assert.Equal(t, "source.b2c", v.SourceLabel)
	assert.Equal(t, "⏳ status.pending", v.StatusLabel)
	assert.Equal(t, "time.minutesAgo:5", v.Created)
	assert.True(t, v.Pending)
	assert.Equal(t, 72, v.ConfidencePct)
	assert.Equal(t, "mid", v.ConfidenceClass)
	assert.Equal(t, "⚠️", v.ConfidenceIcon)
	assert.Equal(t, "confidence.mid", v.ConfidenceLabel)
	require.NotNil(t, v.Matched)
	assert.Equal(t, "돈까스", v.Matched.NameKo)
}

func TestBuildQueueItemUnknownValues(t *testing.T) {
	v := BuildQueueItem(models.QueueItem{ID: "q2", Source: "fax", Status: "weird"}, time.Now(), labels)
	assert.Equal(t, models.SourceB2B, v.Source)
	assert.Equal(t, "⏳ status.unknown", v.StatusLabel)
	assert.Equal(t, "-", v.Created)
	assert.False(t, v.Pending)
	assert.Equal(t, "low", v.ConfidenceClass)

	done := BuildQueueItem(models.QueueItem{Status: models.StatusConfirmed}, time.Now(), labels)
	assert.Equal(t, "✅ status.confirmed", done.StatusLabel)
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "time.justNow", RelativeTime(now.Add(-30*time.Second), now, labels))
	assert.Equal(t, "time.minutesAgo:59", RelativeTime(now.Add(-59*time.Minute), now, labels))
	assert.Equal(t, "time.hoursAgo:2", RelativeTime(now.Add(-2*time.Hour), now, labels))
	assert.Equal(t, "2026-10-14", RelativeTime(now.Add(-72*time.Hour), now, labels))
}

func TestBuildActivity(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	feed := []models.Activity{{Text: "김치찌개 approved", CreatedAt: now.Add(-10 * time.Minute)}}
	assert.Equal(t, []ActivityView{{When: "time.minutesAgo:10", Text: "김치찌개 approved"}}, BuildActivity(feed, now, labels))
	assert.Empty(t, BuildActivity(nil, now, labels))
}

func TestReviewCardsAndSummary(t *testing.T) {
	r := localize.NewResolver(localize.English)
	matched := identifyResult(t, kimchiJSON)
	matched.Confidence = 0.9
	mid := identifyResult(t, kimchiJSON)
	mid.Confidence = 0.7

	items := []ReviewItem{
		{OCR: models.OCRItem{NameKo: "왕김치찌개", PriceKo: "9,000"}, Match: matched},
		{OCR: models.OCRItem{NameKo: "김치찌개", PriceKo: 8000.0}, Match: mid},
		{OCR: models.OCRItem{NameKo: "실패"}, Err: errors.New("boom")},
		{OCR: models.OCRItem{NameKo: "신메뉴"}, Match: &models.IdentifyResult{MatchType: models.MatchTypeAIDiscovery}},
	}

	first := BuildReviewCard(0, items[0], r)
	assert.True(t, first.Matched)
	assert.Equal(t, "9,000", first.Price)
	assert.Equal(t, "Kimchi Stew (Jjigae)", first.Name)
	assert.Equal(t, "Spicy kimchi stew", first.Description)
	assert.Equal(t, []ModifierView{{Ko: "왕", Text: "King-size"}}, first.Modifiers)
	assert.Equal(t, "high", first.ConfidenceClass)
	assert.Equal(t, "✅", first.ConfidenceIcon)

	second := BuildReviewCard(1, items[1], r)
	assert.Equal(t, "8000", second.Price)
	assert.Equal(t, "mid", second.ConfidenceClass)

	failed := BuildReviewCard(2, items[2], r)
	assert.False(t, failed.Matched)
	assert.Equal(t, 0, failed.ConfidencePct)
	assert.Equal(t, "❓", failed.ConfidenceIcon)

	assert.False(t, BuildReviewCard(3, items[3], r).Matched)

	assert.Equal(t, ReviewSummary{Total: 4, High: 1, Mid: 1, Low: 2}, SummarizeReview(items))
	assert.Equal(t, ReviewSummary{Total: 2, Mid: 1, Low: 1}, SummarizeScores([]float64{0.849, 0.1}))
}
