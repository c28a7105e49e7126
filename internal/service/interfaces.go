package service

import (
	"context"
	"time"

	"github.com/pageza/ada/backend/internal/models"
)

// Clock returns the current time. Services take one so tests can pin it.
type Clock func() time.Time

// PlanGenerator talks to the generative service
type PlanGenerator interface {
	// Generate returns a validated weekly plan for the profile
	Generate(ctx context.Context, profile models.Profile) (*models.DietPlan, error)
	// FindNearbyStores is best-effort and never fails
	FindNearbyStores(ctx context.Context, lat, lng float64) StoreLookup
}

// ISessionService defines the interface for session and profile operations
type ISessionService interface {
	Register(ctx context.Context, name, email, password string) (*Session, string, error)
	Login(ctx context.Context, email, password string) (*Session, string, error)
	Restore(ctx context.Context, token string) (*Session, error)
	Logout(ctx context.Context, sess *Session) error
	SubmitProfile(ctx context.Context, sess *Session, profile models.Profile) error
	RegeneratePlan(ctx context.Context, sess *Session) error
	Reset(ctx context.Context, sess *Session) error
}

// IWeightTracker defines the interface for weight tracking operations
type IWeightTracker interface {
	Initialize(ctx context.Context, sess *Session) error
	Record(ctx context.Context, sess *Session, raw string) (*RecordResult, error)
	Overview(ctx context.Context, sess *Session) (*WeightOverview, error)
}

// IPlanExporter defines the interface for plan export
type IPlanExporter interface {
	Export(ctx context.Context, sess *Session) (*PlanExport, error)
}
