package models

import (
	"fmt"
	"strconv"
	"time"
)

// Queue status and source filter values understood by the admin API.
const (
	StatusAll       = "all"
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusRejected  = "rejected"

	SourceAll = "all"
	SourceB2C = "b2c"
	SourceB2B = "b2b"
)

// QueueFilter selects a page of the review queue.
type QueueFilter struct {
	Status string
	Source string
	Limit  int
	Offset int
}

// Normalize replaces unknown filter values with "all" and clamps paging.
func (f QueueFilter) Normalize() QueueFilter {
	switch f.Status {
	case StatusPending, StatusConfirmed, StatusRejected:
	default:
		f.Status = StatusAll
	}
	switch f.Source {
	case SourceB2C, SourceB2B:
	default:
		f.Source = SourceAll
	}
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

// MatchedCanonical is the short canonical reference attached to a queue item.
type MatchedCanonical struct {
	ID     string `json:"id"`
	NameKo string `json:"name_ko"`
	NameEn string `json:"name_en"`
}

// QueueItem is a scanned or uploaded menu name awaiting review.
type QueueItem struct {
	ID                  string            `json:"id"`
	MenuNameKo          string            `json:"menu_name_ko"`
	Source              string            `json:"source"`
	CreatedAt           string            `json:"created_at"`
	Confidence          float64           `json:"confidence"`
	Status              string            `json:"status"`
	MatchedCanonical    *MatchedCanonical `json:"matched_canonical"`
	DecompositionResult map[string]any    `json:"decomposition_result"`
}

// backend timestamps are ISO 8601, usually without a zone (UTC)
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// CreatedTime parses CreatedAt. The bool is false when it is empty or malformed.
func (q QueueItem) CreatedTime() (time.Time, bool) {
	if q.CreatedAt == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, q.CreatedAt); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Pending reports whether the item still accepts review actions.
func (q QueueItem) Pending() bool {
	return q.Status == "" || q.Status == StatusPending
}

// QueuePage is one page of the review queue.
type QueuePage struct {
	Total  int         `json:"total"`
	Data   []QueueItem `json:"data"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

// QueueAction is a review decision sent to the admin API.
type QueueAction struct {
	Action          string `json:"action"`
	CanonicalMenuID string `json:"canonical_menu_id,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

const (
	ActionApprove = "approve"
	ActionReject  = "reject"
	ActionEdit    = "edit"
)

// Validate checks the action name and the fields it requires.
func (a QueueAction) Validate() error {
	switch a.Action {
	case ActionApprove, ActionReject:
		return nil
	case ActionEdit:
		if a.CanonicalMenuID == "" {
			return fmt.Errorf("canonical_menu_id required for edit action")
		}
		return nil
	default:
		return fmt.Errorf("invalid action: %q", a.Action)
	}
}

// AdminStats are the engine monitoring numbers shown on the admin dashboard.
type AdminStats struct {
	CanonicalCount    int     `json:"canonical_count"`
	ModifierCount     int     `json:"modifier_count"`
	PendingQueueCount int     `json:"pending_queue_count"`
	Scans7d           int     `json:"scans_7d"`
	DBHitRate7d       float64 `json:"db_hit_rate_7d"`
	AvgConfidence7d   float64 `json:"avg_confidence_7d"`
	AICost7d          float64 `json:"ai_cost_7d"`
}

// OCRItem is one menu line read from an uploaded menu photo.
type OCRItem struct {
	NameKo  string `json:"name_ko"`
	PriceKo any    `json:"price_ko"` // "9,000" or 9000 depending on the OCR provider
}

// Price renders PriceKo as text; "" when absent.
func (o OCRItem) Price() string {
	switch v := o.PriceKo.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

// OCRResult is the response of the menu photo recognition endpoint.
type OCRResult struct {
	RawText       string    `json:"raw_text"`
	OCRConfidence float64   `json:"ocr_confidence"`
	MenuItems     []OCRItem `json:"menu_items"`
}
