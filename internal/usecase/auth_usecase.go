package usecase

import (
	"context"
	"errors"
	"go-devnet-backend/internal/domain"
	"go-devnet-backend/pkg/apperror"
	"go-devnet-backend/pkg/audit"
	"go-devnet-backend/pkg/gravatar"
	"go-devnet-backend/pkg/metrics"
	"go-devnet-backend/pkg/validation"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type authUsecase struct {
	userRepo domain.UserRepository
	hasher   domain.PasswordHasher
	tokens   domain.TokenService
	validate *validator.Validate
}

func NewAuthUsecase(
	userRepo domain.UserRepository,
	hasher domain.PasswordHasher,
	tokens domain.TokenService,
	validate *validator.Validate,
) domain.AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		validate: validate,
	}
}

func (u *authUsecase) Register(ctx context.Context, input domain.RegisterInput) (*domain.User, error) {
	input.Normalize()
	if res := validation.Check(u.validate, input); !res.IsValid {
		return nil, apperror.Validation(res.Errors)
	}

	_, err := u.userRepo.GetByEmail(ctx, input.Email)
	switch {
	case err == nil:
		return nil, apperror.Conflict("email", "Email already exists")
	case !errors.Is(err, domain.ErrNotFound):
		return nil, apperror.Internal(err)
	}

	hash, err := u.hasher.Hash(input.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user := &domain.User{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Email:     input.Email,
		Password:  hash,
		Avatar:    gravatar.URL(input.Email),
		CreatedAt: time.Now().UTC(),
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		// Lost a race against a concurrent registration
		if errors.Is(err, domain.ErrConflict) {
			return nil, apperror.Conflict("email", "Email already exists")
		}
		return nil, apperror.Internal(err)
	}

	metrics.RecordEvent("user_registered")
	audit.Default().UserRegistered(user.ID)
	return user, nil
}

// Login never tells an unknown email apart from a wrong password.
func (u *authUsecase) Login(ctx context.Context, input domain.LoginInput) (*domain.LoginResult, error) {
	input.Normalize()
	if res := validation.Check(u.validate, input); !res.IsValid {
		return nil, apperror.Validation(res.Errors)
	}

	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			audit.Default().LoginFailed(input.Email, "unknown_email")
			return nil, apperror.InvalidCredentials()
		}
		return nil, apperror.Internal(err)
	}

	if err := u.hasher.Compare(user.Password, input.Password); err != nil {
		audit.Default().LoginFailed(input.Email, "wrong_password")
		return nil, apperror.InvalidCredentials()
	}

	token, err := u.tokens.Generate(user.ID, user.Name, user.Avatar)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	audit.Default().LoginSucceeded(user.ID)
	return &domain.LoginResult{
		Success: true,
		Token:   "Bearer " + token,
	}, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.CurrentUser, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Unauthorized("User not found")
		}
		return nil, apperror.Internal(err)
	}
	return &domain.CurrentUser{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}, nil
}

// Authenticate resolves a bearer token to a live account. Tokens of deleted
// accounts are rejected.
func (u *authUsecase) Authenticate(ctx context.Context, token string) (*domain.Identity, error) {
	userID, err := u.tokens.Verify(token)
	if err != nil {
		return nil, apperror.Unauthorized("Invalid token")
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Unauthorized("User not found")
		}
		return nil, apperror.Internal(err)
	}

	return &domain.Identity{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Avatar: user.Avatar,
	}, nil
}
