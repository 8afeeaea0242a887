package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noorfashion/backend/internal/domain/identity"
	"github.com/noorfashion/backend/internal/domain/shared"
	"github.com/noorfashion/backend/internal/infrastructure/auth"
	"github.com/noorfashion/backend/internal/infrastructure/config"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*identity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*identity.User)}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*identity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeUserRepo) Save(_ context.Context, u *identity.User) error {
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func setupAuth(t *testing.T) (*AuthService, *fakeUserRepo) {
	t.Helper()
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-at-least-32-characters!!",
		AccessTokenExpiration: time.Hour,
		Issuer:                "storefront-test",
	})
	repo := newFakeUserRepo()
	return NewAuthService(repo, jwtService, nil), repo
}

func TestAuthService_Register(t *testing.T) {
	svc, repo := setupAuth(t)
	ctx := context.Background()

	t.Run("creates account and issues a token", func(t *testing.T) {
		resp, err := svc.Register(ctx, RegisterRequest{
			Email:    "Amina@Example.com",
			Name:     "Amina Hassan",
			Password: "correct horse battery",
			Phone:    "+971501234567",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, "amina@example.com", resp.User.Email, "email is normalized")
		assert.Equal(t, "user", resp.User.Role)

		stored, err := repo.FindByID(ctx, resp.User.ID)
		require.NoError(t, err)
		assert.NotEqual(t, "correct horse battery", stored.PasswordHash, "password is hashed")
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterRequest{
			Email:    "amina@example.com",
			Name:     "Imposter",
			Password: "another password",
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})
}

func TestAuthService_Login(t *testing.T) {
	svc, repo := setupAuth(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterRequest{
		Email:    "amina@example.com",
		Name:     "Amina Hassan",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := svc.Login(ctx, LoginRequest{
			Email:    "AMINA@example.com",
			Password: "correct horse battery",
		})
		require.NoError(t, err)
		assert.Equal(t, registered.User.ID, resp.User.ID)
		assert.NotEmpty(t, resp.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginRequest{
			Email:    "amina@example.com",
			Password: "wrong",
		})
		assert.ErrorIs(t, err, identity.ErrInvalidCredentials)
	})

	t.Run("unknown email gets the same error", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginRequest{
			Email:    "nobody@example.com",
			Password: "whatever",
		})
		assert.ErrorIs(t, err, identity.ErrInvalidCredentials)
	})

	t.Run("disabled account", func(t *testing.T) {
		u, err := repo.FindByID(ctx, registered.User.ID)
		require.NoError(t, err)
		u.Disabled = true
		require.NoError(t, repo.Save(ctx, u))

		_, err = svc.Login(ctx, LoginRequest{
			Email:    "amina@example.com",
			Password: "correct horse battery",
		})
		assert.ErrorIs(t, err, identity.ErrUserDisabled)
	})
}

func TestAuthService_Profile(t *testing.T) {
	svc, _ := setupAuth(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterRequest{
		Email:    "amina@example.com",
		Name:     "Amina Hassan",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	t.Run("get own profile", func(t *testing.T) {
		profile, err := svc.GetProfile(ctx, registered.User.ID)
		require.NoError(t, err)
		assert.Equal(t, "Amina Hassan", profile.Name)
	})

	t.Run("partial update", func(t *testing.T) {
		address := "12 Marina Walk, Dubai"
		profile, err := svc.UpdateProfile(ctx, registered.User.ID, UpdateProfileRequest{
			Address: &address,
		})
		require.NoError(t, err)
		assert.Equal(t, address, profile.Address)
		assert.Equal(t, "Amina Hassan", profile.Name)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := svc.GetProfile(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
