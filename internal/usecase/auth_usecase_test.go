package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"go-devnet-backend/internal/domain"
	"go-devnet-backend/internal/usecase"
	"go-devnet-backend/pkg/auth"
	"go-devnet-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthUsecase(repo *MockUserRepo) (domain.AuthUsecase, *auth.JWTManager, *auth.BcryptHasher) {
	tokens := auth.NewJWTManager("test-secret", time.Hour)
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	return usecase.NewAuthUsecase(repo, hasher, tokens, validation.New()), tokens, hasher
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Should report every missing field before touching the store", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc, _, _ := newAuthUsecase(repo)

		_, err := uc.Register(ctx, domain.RegisterInput{Name: "   "})
		appErr := asAppError(t, err)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
		assert.Equal(t, "Name field is required", appErr.Fields["name"])
		assert.Equal(t, "Email field is required", appErr.Fields["email"])
		assert.Equal(t, "Password field is required", appErr.Fields["password"])
		assert.Equal(t, "Confirm password field is required", appErr.Fields["password2"])
		repo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})

	t.Run("Should reject mismatched passwords and short names", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc, _, _ := newAuthUsecase(repo)

		_, err := uc.Register(ctx, domain.RegisterInput{
			Name: "A", Email: "ann@x.com", Password: "secret1", Password2: "secret2",
		})
		appErr := asAppError(t, err)
		assert.Equal(t, "Passwords must match", appErr.Fields["password2"])
		assert.Equal(t, "Name must be between 2 and 30 characters", appErr.Fields["name"])
		assert.NotContains(t, appErr.Fields, "email")
	})

	t.Run("Should reject an invalid email", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc, _, _ := newAuthUsecase(repo)

		_, err := uc.Register(ctx, domain.RegisterInput{
			Name: "Ann", Email: "not-an-email", Password: "secret1", Password2: "secret1",
		})
		assert.Equal(t, "Email is invalid", asAppError(t, err).Fields["email"])
	})

	t.Run("Should fail when the email is taken", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc, _, _ := newAuthUsecase(repo)
		repo.On("GetByEmail", mock.Anything, "ann@x.com").Return(&domain.User{ID: "u1"}, nil)

		_, err := uc.Register(ctx, domain.RegisterInput{
			Name: "Ann", Email: "ann@x.com", Password: "secret1", Password2: "secret1",
		})
		appErr := asAppError(t, err)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
		assert.Equal(t, "Email already exists", appErr.Fields["email"])
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should map a lost insert race to the same conflict", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc, _, _ := newAuthUsecase(repo)
		repo.On("GetByEmail", mock.Anything, "ann@x.com").Return(nil, domain.ErrNotFound)
		repo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrConflict)

		_, err := uc.Register(ctx, domain.RegisterInput{
			Name: "Ann", Email: "ann@x.com", Password: "secret1", Password2: "secret1",
		})
		assert.Equal(t, "Email already exists", asAppError(t, err).Fields["email"])
	})

	t.Run("Should surface store failures as internal errors", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc, _, _ := newAuthUsecase(repo)
		repo.On("GetByEmail", mock.Anything, "ann@x.com").Return(nil, errors.New("connection refused"))

		_, err := uc.Register(ctx, domain.RegisterInput{
			Name: "Ann", Email: "ann@x.com", Password: "secret1", Password2: "secret1",
		})
		assert.Equal(t, http.StatusInternalServerError, asAppError(t, err).Code)
	})

	t.Run("Should hash the password and derive the avatar", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc, _, hasher := newAuthUsecase(repo)
		repo.On("GetByEmail", mock.Anything, "ann@x.com").Return(nil, domain.ErrNotFound)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "ann@x.com" && u.Password != "secret1"
		})).Return(nil)

		user, err := uc.Register(ctx, domain.RegisterInput{
			Name: " Ann ", Email: "  Ann@X.com", Password: "secret1", Password2: "secret1",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "Ann", user.Name)
		assert.Equal(t, "ann@x.com", user.Email)
		assert.True(t, strings.HasPrefix(user.Avatar, "https://www.gravatar.com/avatar/"))
		assert.NoError(t, hasher.Compare(user.Password, "secret1"))
		assert.False(t, user.CreatedAt.IsZero())
		repo.AssertExpectations(t)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Should require both fields", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc, _, _ := newAuthUsecase(repo)

		_, err := uc.Login(ctx, domain.LoginInput{})
		appErr := asAppError(t, err)
		assert.Equal(t, "Email field is required", appErr.Fields["email"])
		assert.Equal(t, "Password field is required", appErr.Fields["password"])
	})

	t.Run("Should not tell an unknown email apart from a wrong password", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc, _, hasher := newAuthUsecase(repo)
		hash, err := hasher.Hash("secret1")
		require.NoError(t, err)
		repo.On("GetByEmail", mock.Anything, "ghost@x.com").Return(nil, domain.ErrNotFound)
		repo.On("GetByEmail", mock.Anything, "ann@x.com").Return(&domain.User{ID: "u1", Password: hash}, nil)

		_, unknownErr := uc.Login(ctx, domain.LoginInput{Email: "ghost@x.com", Password: "secret1"})
		_, wrongErr := uc.Login(ctx, domain.LoginInput{Email: "ann@x.com", Password: "nope"})

		unknown := asAppError(t, unknownErr)
		wrong := asAppError(t, wrongErr)
		assert.Equal(t, http.StatusBadRequest, unknown.Code)
		assert.Equal(t, unknown.Body(), wrong.Body())
	})

	t.Run("Should issue a bearer token for valid credentials", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc, tokens, hasher := newAuthUsecase(repo)
		hash, err := hasher.Hash("secret1")
		require.NoError(t, err)
		repo.On("GetByEmail", mock.Anything, "ann@x.com").
			Return(&domain.User{ID: "u1", Name: "Ann", Password: hash}, nil)

		result, err := uc.Login(ctx, domain.LoginInput{Email: "ANN@x.com", Password: "secret1"})
		require.NoError(t, err)
		assert.True(t, result.Success)
		require.True(t, strings.HasPrefix(result.Token, "Bearer "))

		userID, err := tokens.Verify(strings.TrimPrefix(result.Token, "Bearer "))
		require.NoError(t, err)
		assert.Equal(t, "u1", userID)
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject a tampered token", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc, tokens, _ := newAuthUsecase(repo)
		token, err := tokens.Generate("u1", "Ann", "")
		require.NoError(t, err)

		_, err = uc.Authenticate(ctx, token+"x")
		assert.Equal(t, http.StatusUnauthorized, asAppError(t, err).Code)
	})

	t.Run("Should reject a token whose account is gone", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc, tokens, _ := newAuthUsecase(repo)
		token, err := tokens.Generate("u1", "Ann", "")
		require.NoError(t, err)
		repo.On("GetByID", mock.Anything, "u1").Return(nil, domain.ErrNotFound)

		_, err = uc.Authenticate(ctx, token)
		assert.Equal(t, http.StatusUnauthorized, asAppError(t, err).Code)
	})

	t.Run("Should resolve the caller", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc, tokens, _ := newAuthUsecase(repo)
		token, err := tokens.Generate("u1", "Ann", "")
		require.NoError(t, err)
		repo.On("GetByID", mock.Anything, "u1").
			Return(&domain.User{ID: "u1", Name: "Ann", Email: "ann@x.com", Avatar: "a.png"}, nil)

		identity, err := uc.Authenticate(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, domain.Identity{ID: "u1", Name: "Ann", Email: "ann@x.com", Avatar: "a.png"}, *identity)
	})
}

func TestGetCurrentUser(t *testing.T) {
	repo := new(MockUserRepo)
	uc, _, _ := newAuthUsecase(repo)
	repo.On("GetByID", mock.Anything, "u1").
		Return(&domain.User{ID: "u1", Name: "Ann", Email: "ann@x.com", Password: "hash"}, nil)

	user, err := uc.GetCurrentUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.CurrentUser{ID: "u1", Name: "Ann", Email: "ann@x.com"}, *user)
}
