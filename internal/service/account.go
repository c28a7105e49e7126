package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/pageza/ada/backend/internal/models"
	"github.com/pageza/ada/backend/internal/storage"
)

// AccountService owns the shared account list stored under storage.UsersKey
type AccountService struct {
	store storage.Store
	cost  int

	// serialises read-modify-write of the account list within this process
	mu sync.Mutex
}

// NewAccountService creates a new AccountService instance
func NewAccountService(store storage.Store) *AccountService {
	return &AccountService{
		store: store,
		cost:  bcrypt.DefaultCost,
	}
}

// Register appends a new account. The duplicate check is an exact,
// case-sensitive comparison of the email and happens before any write.
func (s *AccountService) Register(ctx context.Context, name, email, password string) (*models.Account, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.TrimSpace(email) == "" || password == "" {
		return nil, ErrMissingFields
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.list(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		if a.Email == email {
			return nil, ErrDuplicateEmail
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := models.Account{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	accounts = append(accounts, account)
	if err := s.store.Set(ctx, storage.UsersKey, accounts); err != nil {
		return nil, err
	}

	log.Printf("[AccountService] Registered account %s", email)
	return &account, nil
}

// Authenticate checks both fields against the account list. Unknown email and
// wrong password both return ErrInvalidCredentials.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*models.Account, error) {
	account, err := s.Find(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return account, nil
}

// Find looks an account up by email
func (s *AccountService) Find(ctx context.Context, email string) (*models.Account, error) {
	accounts, err := s.list(ctx)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].Email == email {
			return &accounts[i], nil
		}
	}
	return nil, ErrAccountNotFound
}

func (s *AccountService) list(ctx context.Context) ([]models.Account, error) {
	var accounts []models.Account
	if _, err := s.store.Get(ctx, storage.UsersKey, &accounts); err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	return accounts, nil
}
