package render

import (
	"net/url"
	"strings"
	"time"

	"github.com/pandamasta/menuguide/localize"
	"github.com/pandamasta/menuguide/models"
)

// Tag is an emoji-prefixed chip (allergen, dietary tag).
type Tag struct {
	Emoji string
	Text  string
}

// ModifierView pairs a Korean modifier with its translation.
type ModifierView struct {
	Ko   string
	Text string
}

// SearchResult is the outcome of identifying one typed menu name.
type SearchResult struct {
	Input  string
	Result *models.IdentifyResult
	Err    error
}

// MenuCard is a search result card.
type MenuCard struct {
	Input     string
	Failed    bool
	Discovery bool

	NameKo       string
	Name         string
	LangSuffix   string
	ComposedName string
	Description  string
	ImageURL     string
	ImageCredit  string
	DetailURL    string

	SpiceLevel      int
	SpiceMeter      string
	Difficulty      int
	DifficultyEmoji string
	Allergens       []Tag
	Modifiers       []ModifierView

	ConfidencePct   int
	ConfidenceClass string
	MatchType       string
}

// BuildMenuCard renders one search result in the resolver's language.
func BuildMenuCard(res SearchResult, r localize.Resolver) MenuCard {
	card := MenuCard{Input: res.Input}
	if res.Err != nil {
		card.Failed = true
		return card
	}
	if !res.Result.Matched() {
		card.Discovery = true
		return card
	}

	m := res.Result.Canonical
	card.NameKo = m.NameKo()
	card.Name = r.Field(m.Fields, "name")
	card.Description = r.Field(m.Fields, "explanation_short")
	card.ComposedName = ComposeName(card.Name, res.Result.Modifiers, r)
	if r.Lang != localize.English {
		card.LangSuffix = " (" + strings.ToUpper(r.Lang.String()) + ")"
	}
	if u := m.ImageURL(); u != "" {
		card.ImageURL = u
		card.ImageCredit = models.DefaultImageCredit
	}
	card.DetailURL = DetailURL(m.ID(), card.NameKo)

	card.SpiceLevel = m.SpiceLevel()
	card.SpiceMeter = SpiceMeter(card.SpiceLevel)
	card.Difficulty = max(1, m.DifficultyScore())
	card.DifficultyEmoji = DifficultyEmoji(card.Difficulty)
	card.Allergens = allergenTags(m.Allergens())
	for _, mod := range res.Result.Modifiers {
		card.Modifiers = append(card.Modifiers, ModifierView{
			Ko:   models.String(mod, "text_ko"),
			Text: r.Modifier(mod),
		})
	}

	card.ConfidencePct = Percent(res.Result.Confidence)
	card.ConfidenceClass = CardConfidence(res.Result.Confidence)
	card.MatchType = res.Result.MatchType
	return card
}

// ComposeName prefixes the translated modifiers to the dish name, dropping
// any parenthesised note: "Kimchi Stew (Jjigae)" + 왕 -> "King-size Kimchi Stew".
func ComposeName(name string, modifiers []localize.Record, r localize.Resolver) string {
	base, _, _ := strings.Cut(name, "(")
	base = strings.TrimSpace(base)
	if len(modifiers) == 0 {
		return base
	}
	parts := make([]string, 0, len(modifiers)+1)
	for _, mod := range modifiers {
		parts = append(parts, r.Modifier(mod))
	}
	return strings.Join(parts, " ") + " " + base
}

// CardConfidence classes search matches: high >= 0.9, mid >= 0.7.
func CardConfidence(c float64) string {
	switch {
	case c >= 0.9:
		return "high"
	case c >= 0.7:
		return "mid"
	default:
		return "low"
	}
}

// ReviewConfidence classes queue and OCR matches: high >= 0.85, mid >= 0.65.
// The percentage is rounded first, like the queue badge shows it.
func ReviewConfidence(c float64) string {
	switch pct := Percent(c); {
	case pct >= 85:
		return "high"
	case pct >= 65:
		return "mid"
	default:
		return "low"
	}
}

var confidenceIcons = map[string]string{"high": "✅", "mid": "⚠️", "low": "❓"}

// DetailURL links to a menu page by id, or by Korean name when there is no id.
func DetailURL(id, nameKo string) string {
	q := url.Values{}
	if id != "" {
		q.Set("id", id)
	} else {
		q.Set("name", nameKo)
	}
	return "/menu?" + q.Encode()
}

func allergenTags(allergens []string) []Tag {
	tags := make([]Tag, 0, len(allergens))
	for _, a := range allergens {
		tags = append(tags, Tag{Emoji: AllergenEmoji(a), Text: a})
	}
	return tags
}

// Queue

// QueueItemView is one row of the admin review queue.
type QueueItemView struct {
	ID          string
	NameKo      string
	Source      string
	SourceLabel string
	StatusLabel string
	Created     string
	Pending     bool

	ConfidencePct   int
	ConfidenceClass string
	ConfidenceIcon  string
	ConfidenceLabel string

	Matched *models.MatchedCanonical
}

var statusIcons = map[string]string{
	models.StatusPending:   "⏳",
	models.StatusConfirmed: "✅",
	models.StatusRejected:  "❌",
}

// BuildQueueItem labels a queue item with t, the page's label function.
func BuildQueueItem(item models.QueueItem, now time.Time, t func(string, ...any) string) QueueItemView {
	v := QueueItemView{
		ID:      item.ID,
		NameKo:  item.MenuNameKo,
		Source:  models.SourceB2B,
		Pending: item.Pending(),
		Matched: item.MatchedCanonical,
	}
	if item.Source == models.SourceB2C {
		v.Source = models.SourceB2C
	}
	v.SourceLabel = t("source." + v.Source)

	if icon, ok := statusIcons[item.Status]; ok {
		v.StatusLabel = icon + " " + t("status."+item.Status)
	} else {
		v.StatusLabel = "⏳ " + t("status.unknown")
	}

	v.Created = "-"
	if created, ok := item.CreatedTime(); ok {
		v.Created = RelativeTime(created, now, t)
	}

	v.ConfidencePct = Percent(item.Confidence)
	v.ConfidenceClass = ReviewConfidence(item.Confidence)
	v.ConfidenceIcon = confidenceIcons[v.ConfidenceClass]
	v.ConfidenceLabel = t("confidence." + v.ConfidenceClass)
	return v
}

// RelativeTime renders "just now", minutes or hours ago, then the date.
// Zone-less backend timestamps are UTC; parse yields UTC for those.
func RelativeTime(then, now time.Time, t func(string, ...any) string) string {
	d := now.Sub(then)
	switch {
	case d < time.Minute:
		return t("time.justNow")
	case d < time.Hour:
		return t("time.minutesAgo", int(d/time.Minute))
	case d < 24*time.Hour:
		return t("time.hoursAgo", int(d/time.Hour))
	default:
		return then.Format("2006-01-02")
	}
}

// ActivityView is one line of the admin activity feed.
type ActivityView struct {
	When string
	Text string
}

func BuildActivity(feed []models.Activity, now time.Time, t func(string, ...any) string) []ActivityView {
	out := make([]ActivityView, 0, len(feed))
	for _, a := range feed {
		out = append(out, ActivityView{When: RelativeTime(a.CreatedAt, now, t), Text: a.Text})
	}
	return out
}

// OCR review

// ReviewItem is one OCR line with its identify outcome.
type ReviewItem struct {
	OCR   models.OCRItem
	Match *models.IdentifyResult
	Err   error
}

func (it ReviewItem) confidence() float64 {
	if it.Err != nil || it.Match == nil {
		return 0
	}
	return it.Match.Confidence
}

// ReviewCard is one menu line on the upload review step.
type ReviewCard struct {
	Index       int
	NameKo      string
	Price       string
	Matched     bool
	Name        string
	Description string
	Modifiers   []ModifierView

	Confidence      float64
	ConfidencePct   int
	ConfidenceClass string
	ConfidenceIcon  string
}

func BuildReviewCard(index int, it ReviewItem, r localize.Resolver) ReviewCard {
	c := ReviewCard{
		Index:  index,
		NameKo: it.OCR.NameKo,
		Price:  it.OCR.Price(),
	}
	conf := it.confidence()
	c.Confidence = conf
	c.ConfidencePct = Percent(conf)
	c.ConfidenceClass = reviewBand(conf)
	c.ConfidenceIcon = confidenceIcons[c.ConfidenceClass]

	if it.Err == nil && it.Match != nil && it.Match.Canonical != nil {
		m := it.Match.Canonical
		c.Matched = true
		c.Name = r.Field(m.Fields, "name")
		c.Description = r.Field(m.Fields, "explanation_short")
		for _, mod := range it.Match.Modifiers {
			c.Modifiers = append(c.Modifiers, ModifierView{
				Ko:   models.String(mod, "text_ko"),
				Text: r.Modifier(mod),
			})
		}
	}
	return c
}

// ReviewSummary counts review cards per confidence band.
type ReviewSummary struct {
	Total int
	High  int
	Mid   int
	Low   int
}

func SummarizeReview(items []ReviewItem) ReviewSummary {
	scores := make([]float64, len(items))
	for i, it := range items {
		scores[i] = it.confidence()
	}
	return SummarizeScores(scores)
}

// SummarizeScores is SummarizeReview over raw confidence scores.
func SummarizeScores(scores []float64) ReviewSummary {
	s := ReviewSummary{Total: len(scores)}
	for _, c := range scores {
		switch reviewBand(c) {
		case "high":
			s.High++
		case "mid":
			s.Mid++
		default:
			s.Low++
		}
	}
	return s
}

// reviewBand compares the raw score, unlike ReviewConfidence.
func reviewBand(c float64) string {
	switch {
	case c >= 0.85:
		return "high"
	case c >= 0.65:
		return "mid"
	default:
		return "low"
	}
}
