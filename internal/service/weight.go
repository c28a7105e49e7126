package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pageza/ada/backend/internal/metrics"
	"github.com/pageza/ada/backend/internal/models"
	"github.com/pageza/ada/backend/internal/storage"
)

// StaleAfterDays is the age of the latest entry that triggers a weigh-in reminder
const StaleAfterDays = 7

// Trend compares an entry with the one recorded before it
type Trend string

const (
	TrendDown Trend = "down"
	TrendUp   Trend = "up"
	TrendFlat Trend = "flat"
)

// HistoryEntry is a weight entry annotated for display
type HistoryEntry struct {
	models.WeightEntry
	Trend Trend `json:"trend,omitempty"`
}

// WeightOverview is everything the tracker shows
type WeightOverview struct {
	History         []HistoryEntry `json:"history"`
	StartWeight     float64        `json:"startWeight"`
	CurrentWeight   float64        `json:"currentWeight"`
	TargetWeight    float64        `json:"targetWeight"`
	Progress        float64        `json:"progress"`
	ProgressRounded int            `json:"progressRounded"`
	Reminder        *Notification  `json:"reminder,omitempty"`
}

// RecordResult reports the outcome of a weight submission. Recorded is false
// when the input was ignored.
type RecordResult struct {
	Recorded     bool          `json:"recorded"`
	Entry        *HistoryEntry `json:"entry,omitempty"`
	Notification *Notification `json:"notification,omitempty"`
	Reminder     *Notification `json:"reminder,omitempty"`
}

// WeightTracker keeps the append-only weight history of each account
type WeightTracker struct {
	store storage.Store
	now   Clock
}

// NewWeightTracker creates a new WeightTracker instance
func NewWeightTracker(store storage.Store) *WeightTracker {
	return &WeightTracker{store: store, now: time.Now}
}

// WithClock replaces the time source
func (t *WeightTracker) WithClock(now Clock) *WeightTracker {
	t.now = now
	return t
}

// Initialize seeds the history with the profile weight when no history exists
func (t *WeightTracker) Initialize(ctx context.Context, sess *Session) error {
	if sess.Profile == nil {
		return ErrNoProfile
	}

	key := storage.Key(storage.WeightHistoryNamespace, sess.Email())
	var history []models.WeightEntry
	found, err := t.store.Get(ctx, key, &history)
	if err != nil {
		return err
	}
	if found {
		return nil
	}

	seed := []models.WeightEntry{{Date: t.now().UTC(), Weight: sess.Profile.Weight}}
	return t.store.Set(ctx, key, seed)
}

// Record appends a weight entry and updates the profile weight in the same
// atomic write. Blank, non-numeric, non-finite or non-positive input is ignored.
func (t *WeightTracker) Record(ctx context.Context, sess *Session, raw string) (*RecordResult, error) {
	if sess.Profile == nil {
		return nil, ErrNoProfile
	}

	value, ok := ParseWeight(raw)
	if !ok {
		return &RecordResult{Recorded: false}, nil
	}

	history, err := t.history(ctx, sess.Email())
	if err != nil {
		return nil, err
	}

	entry := models.WeightEntry{Date: t.now().UTC(), Weight: value}
	history = append(history, entry)

	profile := *sess.Profile
	profile.Weight = value

	err = t.store.SetMany(ctx, map[string]any{
		storage.Key(storage.WeightHistoryNamespace, sess.Email()): history,
		storage.Key(storage.ProfileNamespace, sess.Email()):       profile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record weight: %w", err)
	}
	sess.Profile = &profile
	metrics.IncWeightEntry()

	annotated := annotate(history)
	latest := annotated[len(annotated)-1]
	notification := EvaluateGoal(profile, value)
	return &RecordResult{
		Recorded:     true,
		Entry:        &latest,
		Notification: &notification,
		Reminder:     CheckStaleness(history, t.now()),
	}, nil
}

// Overview returns the history newest first with progress and reminder
func (t *WeightTracker) Overview(ctx context.Context, sess *Session) (*WeightOverview, error) {
	if sess.Profile == nil {
		return nil, ErrNoProfile
	}

	history, err := t.history(ctx, sess.Email())
	if err != nil {
		return nil, err
	}

	overview := &WeightOverview{
		StartWeight:   sess.Profile.Weight,
		CurrentWeight: sess.Profile.Weight,
		TargetWeight:  sess.Profile.TargetWeight,
		Reminder:      CheckStaleness(history, t.now()),
	}
	if len(history) > 0 {
		overview.StartWeight = history[0].Weight
		overview.CurrentWeight = history[len(history)-1].Weight
	}
	overview.Progress = ProgressPercent(overview.StartWeight, overview.CurrentWeight, overview.TargetWeight)
	overview.ProgressRounded = int(math.Round(overview.Progress))

	annotated := annotate(history)
	overview.History = make([]HistoryEntry, 0, len(annotated))
	for i := len(annotated) - 1; i >= 0; i-- {
		overview.History = append(overview.History, annotated[i])
	}
	return overview, nil
}

func (t *WeightTracker) history(ctx context.Context, email string) ([]models.WeightEntry, error) {
	var history []models.WeightEntry
	if _, err := t.store.Get(ctx, storage.Key(storage.WeightHistoryNamespace, email), &history); err != nil {
		return nil, err
	}
	return history, nil
}

// ParseWeight reads tracker input. A comma is accepted as decimal separator.
func ParseWeight(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(strings.Replace(raw, ",", ".", 1), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return 0, false
	}
	return value, true
}

// CheckStaleness returns a reminder when the latest entry is at least
// StaleAfterDays old, counting partial days as whole ones
func CheckStaleness(history []models.WeightEntry, now time.Time) *Notification {
	if len(history) == 0 {
		return nil
	}
	days := elapsedDays(history[len(history)-1].Date, now)
	if days < StaleAfterDays {
		return nil
	}
	return &Notification{
		Kind: NotificationWarning,
		Text: fmt.Sprintf(MsgWeighInReminderFmt, days),
	}
}

// EvaluateGoal decides whether value reaches the target weight. Losing weight
// reaches it from above, every other goal from below.
func EvaluateGoal(profile models.Profile, value float64) Notification {
	reached := value >= profile.TargetWeight
	if profile.Goal == models.GoalLoseWeight {
		reached = value <= profile.TargetWeight
	}
	if reached {
		return Notification{Kind: NotificationSuccess, Text: MsgGoalReached}
	}
	return Notification{
		Kind: NotificationInfo,
		Text: fmt.Sprintf(MsgGoalRemainingFormat, math.Abs(value-profile.TargetWeight)),
	}
}

// ProgressPercent is the share of the start-to-target distance covered so far,
// clamped to [0, 100]. It is 100 when start equals target.
func ProgressPercent(start, current, target float64) float64 {
	total := math.Abs(start - target)
	if total == 0 {
		return 100
	}
	return math.Min(100, math.Max(0, math.Abs(start-current)/total*100))
}

// annotate attaches a trend to each entry relative to the entry before it
func annotate(history []models.WeightEntry) []HistoryEntry {
	out := make([]HistoryEntry, len(history))
	for i, entry := range history {
		out[i] = HistoryEntry{WeightEntry: entry}
		if i == 0 {
			continue
		}
		switch prev := history[i-1].Weight; {
		case entry.Weight < prev:
			out[i].Trend = TrendDown
		case entry.Weight > prev:
			out[i].Trend = TrendUp
		default:
			out[i].Trend = TrendFlat
		}
	}
	return out
}
