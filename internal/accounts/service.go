package accounts

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"saassyadmin/internal/util"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// ValidationError carries per-field messages for forms and API payloads.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, k := range sortedFieldNames(e.Fields) {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// Service implements registration and password login on top of a Repository.
type Service struct {
	repo Repository
	// dummyHash is compared against when the email is unknown so both
	// failure paths cost one bcrypt comparison.
	dummyHash string
}

func NewService(repo Repository) (*Service, error) {
	h, err := util.HashPassword("dummy-password-0")
	if err != nil {
		return nil, err
	}
	return &Service{repo: repo, dummyHash: h}, nil
}

func (s *Service) Repo() Repository { return s.repo }

func (s *Service) Register(ctx context.Context, in RegisterInput) (*Account, error) {
	fields := map[string]string{}

	name := strings.TrimSpace(in.Name)
	switch n := utf8.RuneCountInString(name); {
	case n < 2:
		fields["name"] = "name is too short"
	case n > 100:
		fields["name"] = "name is too long"
	}
	email, err := util.NormalizeEmail(in.Email)
	if err != nil {
		fields["email"] = err.Error()
	}
	if err := util.ValidatePassword(in.Password); err != nil {
		fields["password"] = err.Error()
	} else if in.ConfirmPassword != in.Password {
		fields["confirm_password"] = "passwords do not match"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	hash, err := util.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, CreateParams{Email: email, Name: name, PasswordHash: hash})
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (*Account, error) {
	normalized, err := util.NormalizeEmail(email)
	if err != nil {
		util.ComparePassword(s.dummyHash, password)
		return nil, ErrInvalidCredentials
	}
	a, err := s.repo.FindByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			util.ComparePassword(s.dummyHash, password)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !util.ComparePassword(a.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return a, nil
}

func sortedFieldNames(m map[string]string) []string {
	order := []string{"name", "email", "password", "confirm_password"}
	out := make([]string, 0, len(m))
	for _, k := range order {
		if _, ok := m[k]; ok {
			out = append(out, k)
		}
	}
	return out
}
