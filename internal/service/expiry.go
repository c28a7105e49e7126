package service

import (
	"math"
	"time"

	"github.com/pageza/ada/backend/internal/models"
)

// PlanLifetimeDays is how long a plan stays current
const PlanLifetimeDays = 7

// IsExpired reports whether strictly more than PlanLifetimeDays whole days,
// rounded up, separate now from the plan timestamp. A plan without a timestamp
// never expires.
func IsExpired(plan *models.DietPlan, now time.Time) bool {
	if plan == nil || plan.Timestamp == nil {
		return false
	}
	return elapsedDays(time.UnixMilli(*plan.Timestamp), now) > PlanLifetimeDays
}

// RegenerateConfirmation is the prompt shown before a plan is replaced
func RegenerateConfirmation(expired bool) string {
	if expired {
		return MsgRegenerateExpired
	}
	return MsgRegenerateConfirm
}

// elapsedDays is the absolute distance between two instants in days, rounded up
func elapsedDays(from, to time.Time) int {
	d := to.Sub(from)
	if d < 0 {
		d = -d
	}
	return int(math.Ceil(float64(d) / float64(24*time.Hour)))
}
