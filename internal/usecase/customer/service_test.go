package customer

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "retailstore/backend/internal/domain/customer"

	"golang.org/x/crypto/bcrypt"
)

type stubRepository struct {
	created   *domain.Customer
	replaced  *domain.Customer
	deletedID string
	existing  *domain.Customer
	listed    []*domain.Customer
	lastList  domain.Filter
	getErr    error
	createErr error
}

func (s *stubRepository) Create(ctx context.Context, customer *domain.Customer) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = customer
	customer.ID = "64f000000000000000000001"
	return nil
}

func (s *stubRepository) List(ctx context.Context, filter domain.Filter) ([]*domain.Customer, error) {
	s.lastList = filter
	return s.listed, nil
}

func (s *stubRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if s.existing == nil || s.existing.ID != id {
		return nil, domain.ErrNotFound
	}
	return s.existing, nil
}

func (s *stubRepository) Replace(ctx context.Context, customer *domain.Customer) error {
	s.replaced = customer
	return nil
}

func (s *stubRepository) Delete(ctx context.Context, id string) error {
	s.deletedID = id
	return nil
}

func validInput() Input {
	return Input{
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "s3cret",
		FirstName: "Alice",
		LastName:  "Anderson",
		Phone:     "555-0100",
		Address:   "1 Main St",
	}
}

func TestCreateRejectsMissingFields(t *testing.T) {
	cases := []struct {
		field string
		mut   func(*Input)
	}{
		{"username", func(in *Input) { in.Username = "" }},
		{"email", func(in *Input) { in.Email = " " }},
		{"password", func(in *Input) { in.Password = "" }},
		{"first_name", func(in *Input) { in.FirstName = "" }},
		{"last_name", func(in *Input) { in.LastName = "" }},
	}

	for _, tc := range cases {
		repo := &stubRepository{}
		svc := NewService(repo)
		input := validInput()
		tc.mut(&input)

		_, err := svc.Create(context.Background(), input)
		var validation *domain.ValidationError
		if !errors.As(err, &validation) {
			t.Fatalf("field %s: expected ValidationError, got %v", tc.field, err)
		}
		if len(validation.Fields) != 1 || validation.Fields[0] != tc.field {
			t.Fatalf("expected missing field %q, got %v", tc.field, validation.Fields)
		}
		if repo.created != nil {
			t.Fatalf("field %s: no insert must happen on validation failure", tc.field)
		}
	}
}

func TestCreateReportsAllMissingFields(t *testing.T) {
	svc := NewService(&stubRepository{})

	_, err := svc.Create(context.Background(), Input{})
	var validation *domain.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(validation.Fields) != 5 {
		t.Fatalf("expected 5 missing fields, got %v", validation.Fields)
	}
}

func TestCreateHashesPassword(t *testing.T) {
	repo := &stubRepository{}
	svc := NewService(repo)

	cust, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if cust.PasswordHash == "s3cret" {
		t.Fatal("raw password must not be persisted")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cust.PasswordHash), []byte("s3cret")); err != nil {
		t.Fatalf("stored hash does not verify against original password: %v", err)
	}
}

func TestCreateSetsTimestampsAndID(t *testing.T) {
	repo := &stubRepository{}
	svc := NewService(repo)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.nowFunc = func() time.Time { return now }

	cust, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !cust.CreatedAt.Equal(now) || !cust.UpdatedAt.Equal(now) {
		t.Fatalf("expected timestamps %v, got created=%v updated=%v", now, cust.CreatedAt, cust.UpdatedAt)
	}
	if cust.ID == "" {
		t.Fatal("expected store-assigned id to be set")
	}
}

func TestListPassesTrimmedFilter(t *testing.T) {
	repo := &stubRepository{}
	svc := NewService(repo)

	if _, err := svc.List(context.Background(), domain.Filter{Username: " alice ", Email: ""}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if repo.lastList.Username != "alice" || repo.lastList.Email != "" {
		t.Fatalf("unexpected filter passed to repository: %+v", repo.lastList)
	}
}

func TestUpdateReplacesAllMutableFields(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := &stubRepository{
		existing: &domain.Customer{
			ID:        "64f000000000000000000001",
			Username:  "alice",
			Email:     "alice@example.com",
			FirstName: "Alice",
			LastName:  "Anderson",
			Phone:     "555-0100",
			Address:   "1 Main St",
			CreatedAt: created,
			UpdatedAt: created,
		},
	}
	svc := NewService(repo)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.nowFunc = func() time.Time { return now }

	input := validInput()
	input.Email = "alice@new.example.com"
	input.Phone = ""
	input.Address = ""

	cust, err := svc.Update(context.Background(), "64f000000000000000000001", input)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if cust.Email != "alice@new.example.com" {
		t.Fatalf("expected replaced email, got %q", cust.Email)
	}
	if cust.Phone != "" || cust.Address != "" {
		t.Fatal("full replacement must clear optional fields omitted from the payload")
	}
	if !cust.CreatedAt.Equal(created) {
		t.Fatalf("creation timestamp must be preserved, got %v", cust.CreatedAt)
	}
	if !cust.UpdatedAt.Equal(now) {
		t.Fatalf("expected refreshed updated_at %v, got %v", now, cust.UpdatedAt)
	}
	if repo.replaced == nil {
		t.Fatal("expected repository replace to be called")
	}
}

func TestUpdateUnknownIDReturnsNotFound(t *testing.T) {
	repo := &stubRepository{}
	svc := NewService(repo)

	_, err := svc.Update(context.Background(), "64f0000000000000000000ff", validInput())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if repo.replaced != nil {
		t.Fatal("nothing must be mutated when the id does not match")
	}
}

func TestUpdateValidatesBeforeLookup(t *testing.T) {
	repo := &stubRepository{getErr: errors.New("lookup must not run")}
	svc := NewService(repo)

	_, err := svc.Update(context.Background(), "64f000000000000000000001", Input{})
	var validation *domain.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError before any store access, got %v", err)
	}
}

func TestDeleteDelegates(t *testing.T) {
	repo := &stubRepository{}
	svc := NewService(repo)

	if err := svc.Delete(context.Background(), "64f000000000000000000001"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if repo.deletedID != "64f000000000000000000001" {
		t.Fatalf("unexpected deleted id %q", repo.deletedID)
	}
}

func TestDeleteEmptyIDIsNotFound(t *testing.T) {
	svc := NewService(&stubRepository{})
	if err := svc.Delete(context.Background(), "  "); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
