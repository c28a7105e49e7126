package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pageza/ada/backend/internal/metrics"
	"github.com/pageza/ada/backend/internal/models"
	"github.com/pageza/ada/backend/internal/storage"
	"github.com/pageza/ada/backend/internal/types"
)

// Session is the state of one logged-in account. It is created by Register,
// Login or Restore and is unusable after Logout.
type Session struct {
	ID          string
	Account     models.Account
	Profile     *models.Profile
	Plan        *models.DietPlan
	WeekExpired bool
	Loading     bool
	Error       string
	ExpiresAt   time.Time
}

// SessionView is the API shape of a session
type SessionView struct {
	User        models.AccountView `json:"user"`
	Profile     *models.Profile    `json:"profile"`
	Plan        *models.DietPlan   `json:"plan"`
	WeekExpired bool               `json:"weekExpired"`
	Loading     bool               `json:"loading"`
	Error       string             `json:"error,omitempty"`
	BMI         *BMIAnalysis       `json:"bmi,omitempty"`
	Regenerate  string             `json:"regenerateConfirmation,omitempty"`
}

// View builds the response shape of the session
func (s *Session) View() SessionView {
	view := SessionView{
		User:        s.Account.View(),
		Profile:     s.Profile,
		Plan:        s.Plan,
		WeekExpired: s.WeekExpired,
		Loading:     s.Loading,
		Error:       s.Error,
	}
	if s.Profile != nil {
		bmi := AnalyzeProfileBMI(*s.Profile)
		view.BMI = &bmi
	}
	if s.Plan != nil {
		view.Regenerate = RegenerateConfirmation(s.WeekExpired)
	}
	return view
}

// Email returns the address that keys the account data
func (s *Session) Email() string {
	return s.Account.Email
}

func (s *Session) clear() {
	s.Profile = nil
	s.Plan = nil
	s.WeekExpired = false
	s.Loading = false
	s.Error = ""
}

// SessionService drives the session lifecycle and the profile/plan state
type SessionService struct {
	store     storage.Store
	accounts  *AccountService
	generator PlanGenerator
	jwtSecret []byte
	ttl       time.Duration
	now       Clock
}

// NewSessionService creates a new SessionService instance
func NewSessionService(store storage.Store, accounts *AccountService, generator PlanGenerator, jwtSecret string, ttl time.Duration) *SessionService {
	return &SessionService{
		store:     store,
		accounts:  accounts,
		generator: generator,
		jwtSecret: []byte(jwtSecret),
		ttl:       ttl,
		now:       time.Now,
	}
}

// WithClock replaces the time source
func (s *SessionService) WithClock(now Clock) *SessionService {
	s.now = now
	return s
}

// Register creates the account and logs it in
func (s *SessionService) Register(ctx context.Context, name, email, password string) (*Session, string, error) {
	account, err := s.accounts.Register(ctx, name, email, password)
	if err != nil {
		metrics.IncAuthEvent("register", "failure")
		return nil, "", err
	}
	metrics.IncAuthEvent("register", "success")
	return s.start(ctx, account)
}

// Login checks the credentials and opens a session
func (s *SessionService) Login(ctx context.Context, email, password string) (*Session, string, error) {
	account, err := s.accounts.Authenticate(ctx, email, password)
	if err != nil {
		metrics.IncAuthEvent("login", "failure")
		return nil, "", err
	}
	metrics.IncAuthEvent("login", "success")
	return s.start(ctx, account)
}

// Restore rebuilds the session named by a signed token. The token must verify
// and its session marker must still exist.
func (s *SessionService) Restore(ctx context.Context, tokenString string) (*Session, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.ID == "" || claims.Email == "" {
		return nil, ErrInvalidToken
	}

	var email string
	found, err := s.store.Get(ctx, storage.Key(storage.SessionNamespace, claims.ID), &email)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrSessionNotFound
	}
	if email != claims.Email {
		return nil, ErrInvalidToken
	}

	account, err := s.accounts.Find(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	sess := &Session{ID: claims.ID, Account: *account}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	if err := s.hydrate(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Logout deletes the session marker. Account data is kept.
func (s *SessionService) Logout(ctx context.Context, sess *Session) error {
	if err := s.store.Remove(ctx, storage.Key(storage.SessionNamespace, sess.ID)); err != nil {
		return err
	}
	metrics.IncAuthEvent("logout", "success")
	log.Printf("[SessionService] Logged out %s", sess.Email())

	sess.clear()
	sess.ID = ""
	return nil
}

// SubmitProfile saves the profile and generates a fresh plan for it. The
// profile stays saved when generation fails.
func (s *SessionService) SubmitProfile(ctx context.Context, sess *Session, profile models.Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	sess.Error = ""
	if err := s.store.Set(ctx, storage.Key(storage.ProfileNamespace, sess.Email()), profile); err != nil {
		return err
	}
	sess.Profile = &profile

	return s.generate(ctx, sess, profile, MsgGenerationFailed)
}

// RegeneratePlan replaces the plan using the stored profile
func (s *SessionService) RegeneratePlan(ctx context.Context, sess *Session) error {
	if sess.Profile == nil {
		return ErrNoProfile
	}
	sess.WeekExpired = false
	return s.generate(ctx, sess, *sess.Profile, MsgRegenerationFailed)
}

// Reset deletes the profile, plan and weight history of the account
func (s *SessionService) Reset(ctx context.Context, sess *Session) error {
	if err := s.store.Remove(ctx, storage.AccountKeys(sess.Email())...); err != nil {
		return err
	}
	log.Printf("[SessionService] Reset data of %s", sess.Email())
	sess.clear()
	return nil
}

func (s *SessionService) start(ctx context.Context, account *models.Account) (*Session, string, error) {
	now := s.now()
	sess := &Session{
		ID:        uuid.New().String(),
		Account:   *account,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.store.SetWithTTL(ctx, storage.Key(storage.SessionNamespace, sess.ID), account.Email, s.ttl); err != nil {
		return nil, "", fmt.Errorf("failed to save session: %w", err)
	}

	token, err := s.generateToken(sess, now)
	if err != nil {
		return nil, "", err
	}

	if err := s.hydrate(ctx, sess); err != nil {
		return nil, "", err
	}
	return sess, token, nil
}

func (s *SessionService) generateToken(sess *Session, issuedAt time.Time) (string, error) {
	claims := types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sess.ID,
			Subject:   sess.Email(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
		Email: sess.Email(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// hydrate loads the profile and plan of the account and evaluates plan expiry
func (s *SessionService) hydrate(ctx context.Context, sess *Session) error {
	var profile models.Profile
	found, err := s.store.Get(ctx, storage.Key(storage.ProfileNamespace, sess.Email()), &profile)
	if err != nil {
		return err
	}
	sess.Profile = nil
	if found {
		sess.Profile = &profile
	}

	var plan models.DietPlan
	found, err = s.store.Get(ctx, storage.Key(storage.PlanNamespace, sess.Email()), &plan)
	if err != nil {
		return err
	}
	sess.Plan = nil
	if found {
		sess.Plan = &plan
	}

	sess.WeekExpired = IsExpired(sess.Plan, s.now())
	return nil
}

func (s *SessionService) generate(ctx context.Context, sess *Session, profile models.Profile, failureMessage string) error {
	sess.Loading = true
	defer func() { sess.Loading = false }()

	started := time.Now()
	plan, err := s.generator.Generate(ctx, profile)
	if err != nil {
		metrics.ObservePlanGeneration("failure", time.Since(started))
		log.Printf("[SessionService] Plan generation failed for %s: %v", sess.Email(), err)
		sess.Error = failureMessage
		if !errors.Is(err, ErrGenerationFailed) {
			err = fmt.Errorf("%w: %v", ErrGenerationFailed, err)
		}
		return err
	}
	metrics.ObservePlanGeneration("success", time.Since(started))

	timestamp := s.now().UnixMilli()
	plan.Timestamp = &timestamp
	if err := s.store.Set(ctx, storage.Key(storage.PlanNamespace, sess.Email()), plan); err != nil {
		return err
	}

	sess.Plan = plan
	sess.WeekExpired = false
	sess.Error = ""
	return nil
}
