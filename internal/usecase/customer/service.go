package customer

import (
	"context"
	"fmt"
	"strings"
	"time"

	domain "retailstore/backend/internal/domain/customer"

	"golang.org/x/crypto/bcrypt"
)

// Service encapsulates customer use cases.
type Service struct {
	repo    domain.Repository
	nowFunc func() time.Time
}

// NewService constructs a customer service.
func NewService(repo domain.Repository) *Service {
	return &Service{
		repo:    repo,
		nowFunc: time.Now,
	}
}

// Input carries the customer payload for create and update. Both operations
// require the same five fields; update is a full replacement, so phone and
// address are overwritten with whatever is supplied, including empty values.
type Input struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

func (in *Input) validate() error {
	var missing []string
	if strings.TrimSpace(in.Username) == "" {
		missing = append(missing, "username")
	}
	if strings.TrimSpace(in.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(in.Password) == "" {
		missing = append(missing, "password")
	}
	if strings.TrimSpace(in.FirstName) == "" {
		missing = append(missing, "first_name")
	}
	if strings.TrimSpace(in.LastName) == "" {
		missing = append(missing, "last_name")
	}
	if len(missing) > 0 {
		return &domain.ValidationError{Fields: missing}
	}
	return nil
}

// Create validates the payload, hashes the password, and stores a new
// customer with server-set timestamps. The store assigns the identifier.
func (s *Service) Create(ctx context.Context, input Input) (*domain.Customer, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	now := s.nowFunc().UTC()
	cust := &domain.Customer{
		Username:     strings.TrimSpace(input.Username),
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: string(hashed),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Phone:        strings.TrimSpace(input.Phone),
		Address:      strings.TrimSpace(input.Address),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, cust); err != nil {
		return nil, err
	}
	return cust, nil
}

// List retrieves customers matching the optional exact-match filters.
func (s *Service) List(ctx context.Context, filter domain.Filter) ([]*domain.Customer, error) {
	filter.Username = strings.TrimSpace(filter.Username)
	filter.Email = strings.TrimSpace(filter.Email)
	return s.repo.List(ctx, filter)
}

// Update replaces all mutable fields of the customer matching id. The
// original creation timestamp is preserved; updated_at is refreshed.
func (s *Service) Update(ctx context.Context, id string, input Input) (*domain.Customer, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrNotFound
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	cust := &domain.Customer{
		ID:           existing.ID,
		Username:     strings.TrimSpace(input.Username),
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: string(hashed),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Phone:        strings.TrimSpace(input.Phone),
		Address:      strings.TrimSpace(input.Address),
		CreatedAt:    existing.CreatedAt,
		UpdatedAt:    s.nowFunc().UTC(),
	}

	if err := s.repo.Replace(ctx, cust); err != nil {
		return nil, err
	}
	return cust, nil
}

// Delete removes the customer matching id.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
