package accounts

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(NewMemoryRepo())
	require.NoError(t, err)
	return svc
}

func TestRegisterFirstAccountIsAdmin(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	first, err := svc.Register(ctx, RegisterInput{Name: "Ada", Email: "Ada@Example.com", Password: "s3cretpass", ConfirmPassword: "s3cretpass"})
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, first.Role)
	assert.Equal(t, "ada@example.com", first.Email)
	assert.NotEqual(t, "s3cretpass", first.PasswordHash)
	assert.True(t, first.IsAdmin())

	second, err := svc.Register(ctx, RegisterInput{Name: "Grace", Email: "grace@example.com", Password: "an0therpass", ConfirmPassword: "an0therpass"})
	require.NoError(t, err)
	assert.Equal(t, RoleMember, second.Role)
	assert.False(t, second.IsAdmin())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	in := RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "s3cretpass", ConfirmPassword: "s3cretpass"}

	_, err := svc.Register(ctx, in)
	require.NoError(t, err)

	in.Email = "ADA@example.com"
	_, err = svc.Register(ctx, in)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterValidation(t *testing.T) {
	svc := newService(t)
	_, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "nope", Password: "short", ConfirmPassword: "short"})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "email")
	assert.Contains(t, verr.Fields, "password")
	assert.NotContains(t, verr.Fields, "confirm_password")
	assert.Equal(t, "validation failed: name: name is too short; email: email is invalid; password: password must be at least 8 characters", verr.Error())

	_, err = svc.Register(context.Background(), RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "s3cretpass", ConfirmPassword: "s3cretpasz"})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, map[string]string{"confirm_password": "passwords do not match"}, verr.Fields)
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	created, err := svc.Register(ctx, RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "s3cretpass", ConfirmPassword: "s3cretpass"})
	require.NoError(t, err)

	got, err := svc.Authenticate(ctx, " ADA@example.com", "s3cretpass")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.Authenticate(ctx, "ada@example.com", "wrongpass1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "nobody@example.com", "s3cretpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "not an email", "s3cretpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestMemoryRepoFindAndList(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	_, err := repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.FindByEmail(ctx, "x@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	for i := 0; i < 5; i++ {
		_, err := repo.Create(ctx, CreateParams{Email: fmt.Sprintf("u%d@example.com", i), Name: "U"})
		require.NoError(t, err)
	}
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	page, err := repo.List(ctx, 2, 1)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	rest, err := repo.List(ctx, 0, 3)
	require.NoError(t, err)
	assert.Len(t, rest, 2)

	none, err := repo.List(ctx, 10, 10)
	require.NoError(t, err)
	assert.Empty(t, none)

	head, err := repo.List(ctx, 2, 0)
	require.NoError(t, err)
	negative, err := repo.List(ctx, 2, -40)
	require.NoError(t, err)
	assert.Equal(t, head, negative)
}

func TestMemoryRepoConcurrentCreateSingleAdmin(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = repo.Create(ctx, CreateParams{Email: fmt.Sprintf("u%d@example.com", i), Name: "U"})
		}(i)
	}
	wg.Wait()

	all, err := repo.List(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, all, 20)
	admins := 0
	for _, a := range all {
		if a.IsAdmin() {
			admins++
		}
	}
	assert.Equal(t, 1, admins)
}
