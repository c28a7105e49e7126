package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/ada/backend/internal/models"
)

// ObjectStorage is the part of the S3 client used by the exporter
type ObjectStorage interface {
	PutObject(ctx context.Context, objectKey, contentType string, body []byte) error
	GeneratePresignedURL(ctx context.Context, objectKey string, expiration time.Duration) (string, error)
}

// PlanExport points at an uploaded copy of the plan
type PlanExport struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// planDocument is the exported file
type planDocument struct {
	User         models.AccountView `json:"user"`
	ExportedAt   time.Time          `json:"exportedAt"`
	Expired      bool               `json:"expired"`
	Plan         *models.DietPlan   `json:"plan"`
	ShoppingList []string           `json:"shoppingList"`
}

// PlanExporter uploads plans to object storage and hands out presigned links
type PlanExporter struct {
	storage ObjectStorage
	linkTTL time.Duration
	now     Clock
}

// NewPlanExporter creates a new PlanExporter. A nil storage disables export.
func NewPlanExporter(storage ObjectStorage, linkTTL time.Duration) *PlanExporter {
	if linkTTL == 0 {
		linkTTL = 15 * time.Minute
	}
	return &PlanExporter{storage: storage, linkTTL: linkTTL, now: time.Now}
}

// Export uploads the current plan of the session
func (e *PlanExporter) Export(ctx context.Context, sess *Session) (*PlanExport, error) {
	if e == nil || e.storage == nil {
		return nil, ErrExportNotConfigured
	}
	if sess.Plan == nil {
		return nil, ErrNoPlan
	}

	now := e.now().UTC()
	doc := planDocument{
		User:         sess.Account.View(),
		ExportedAt:   now,
		Expired:      IsExpired(sess.Plan, now),
		Plan:         sess.Plan,
		ShoppingList: sess.Plan.WeeklyShoppingList,
	}
	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal plan: %w", err)
	}

	objectKey := fmt.Sprintf("plan-exports/%s/%s.json", uuid.NewSHA1(uuid.NameSpaceURL, []byte(sess.Email())), uuid.New().String())
	if err := e.storage.PutObject(ctx, objectKey, "application/json", body); err != nil {
		return nil, fmt.Errorf("failed to upload plan: %w", err)
	}

	url, err := e.storage.GeneratePresignedURL(ctx, objectKey, e.linkTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to presign plan: %w", err)
	}

	log.Printf("[PlanExporter] Exported plan of %s to %s", sess.Email(), objectKey)
	return &PlanExport{Key: objectKey, URL: url, ExpiresAt: now.Add(e.linkTTL)}, nil
}
