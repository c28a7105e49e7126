package api

import (
	"github.com/pageza/ada/backend/internal/models"
	"github.com/pageza/ada/backend/internal/service"
)

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token   string              `json:"token"`
	Session service.SessionView `json:"session"`
}

// PlanResponse is the current plan with its expiry state
type PlanResponse struct {
	Plan                   *models.DietPlan `json:"plan"`
	WeekExpired            bool             `json:"weekExpired"`
	RegenerateConfirmation string           `json:"regenerateConfirmation"`
	ExpiredTitle           string           `json:"expiredTitle,omitempty"`
	ExpiredMessage         string           `json:"expiredMessage,omitempty"`
}

// MessageResponse carries a plain confirmation
type MessageResponse struct {
	Message string `json:"message"`
}
