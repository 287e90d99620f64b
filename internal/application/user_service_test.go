package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	repo "github.com/astrocat-app/astrocat/internal/domain/repository"
	"github.com/astrocat-app/astrocat/pkg/helpers"
)

func newUserService(t *testing.T) (*UserService, *memUserRepo) {
	t.Helper()
	users := newMemUserRepo()
	svc := NewUserService(users, nil, nil, nil, "", helpers.NewLogger("test", "test"), nil, false)
	return svc, users
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUserService(t)

	in := RegisterInput{
		Username: "stargazer",
		Email:    "stargazer@example.com",
		Password: "orion123",
		Name:     "Galileo",
		Surname:  "Galilei",
	}

	u, err := svc.Register(ctx, in)
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.NotEqual(t, "orion123", u.PasswordHash)
	assert.True(t, helpers.CheckPassword(u.PasswordHash, "orion123"))

	t.Run("DuplicateEmail", func(t *testing.T) {
		dup := in
		dup.Username = "otheruser"
		_, err := svc.Register(ctx, dup)
		assert.ErrorIs(t, err, repo.ErrConflict)
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		dup := in
		dup.Email = "other@example.com"
		_, err := svc.Register(ctx, dup)
		assert.ErrorIs(t, err, repo.ErrConflict)
	})
}

func TestUserService_Authenticate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUserService(t)

	_, err := svc.Register(ctx, RegisterInput{
		Username: "kepler",
		Email:    "kepler@example.com",
		Password: "ellipse",
		Name:     "Johannes",
		Surname:  "Kepler",
	})
	require.NoError(t, err)

	t.Run("ByEmail", func(t *testing.T) {
		u, err := svc.Authenticate(ctx, "kepler@example.com", "ellipse")
		require.NoError(t, err)
		assert.Equal(t, "kepler", u.Username)
	})

	t.Run("ByUsername", func(t *testing.T) {
		u, err := svc.Authenticate(ctx, "kepler", "ellipse")
		require.NoError(t, err)
		assert.Equal(t, "kepler@example.com", u.Email)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "kepler", "circle")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownLogin", func(t *testing.T) {
		_, unknownErr := svc.Authenticate(ctx, "nobody", "ellipse")
		_, wrongErr := svc.Authenticate(ctx, "kepler", "wrong")
		// Unknown account and bad password are indistinguishable.
		assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
		assert.Equal(t, wrongErr, unknownErr)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUserService(t)

	u, err := svc.Register(ctx, RegisterInput{
		Username: "herschel",
		Email:    "herschel@example.com",
		Password: "uranus",
		Name:     "William",
		Surname:  "Herschel",
	})
	require.NoError(t, err)

	other, err := svc.Register(ctx, RegisterInput{
		Username: "caroline",
		Email:    "caroline@example.com",
		Password: "comets",
		Name:     "Caroline",
		Surname:  "Herschel",
	})
	require.NoError(t, err)

	t.Run("PartialUpdate", func(t *testing.T) {
		age := 42
		got, err := svc.UpdateProfile(ctx, u.ID, UpdateProfileInput{About: "telescope maker", Age: &age})
		require.NoError(t, err)
		assert.Equal(t, "telescope maker", got.About)
		assert.Equal(t, 42, *got.Age)
		assert.Equal(t, "William", got.Name)
	})

	t.Run("UsernameTaken", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, u.ID, UpdateProfileInput{Username: other.Username})
		assert.ErrorIs(t, err, repo.ErrConflict)
	})

	t.Run("PasswordChange", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, u.ID, UpdateProfileInput{Password: "neptune"})
		require.NoError(t, err)
		_, err = svc.Authenticate(ctx, "herschel", "uranus")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		_, err = svc.Authenticate(ctx, "herschel", "neptune")
		assert.NoError(t, err)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, "missing", UpdateProfileInput{Name: "X"})
		assert.True(t, errors.Is(err, repo.ErrNotFound))
	})
}
