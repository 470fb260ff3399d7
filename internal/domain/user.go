package domain

import (
	"context"
	"strings"
	"time"
)

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // bcrypt hash, never serialized
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"date"`
}

// Identity is the caller resolved from a bearer credential.
type Identity struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Avatar string `json:"avatar"`
}

// CurrentUser is the projection returned by GET /users/current.
type CurrentUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type RegisterInput struct {
	Name      string `json:"name" validate:"notblank,min=2,max=30"`
	Email     string `json:"email" validate:"notblank,email"`
	Password  string `json:"password" validate:"notblank,min=6,max=30"`
	Password2 string `json:"password2" validate:"notblank,eqfield=Password"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"notblank"`
	Password string `json:"password" validate:"notblank"`
}

// Normalize trims the name and lowercases the email. Passwords are kept
// verbatim.
func (in *RegisterInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
}

func (in *LoginInput) Normalize() {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
}

type LoginResult struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Delete(ctx context.Context, id string) error
}

// PasswordHasher hashes with a random salt and compares in constant time.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenService issues and verifies signed bearer credentials.
type TokenService interface {
	Generate(userID, name, avatar string) (string, error)
	Verify(token string) (userID string, err error)
}

type AuthUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*User, error)
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	GetCurrentUser(ctx context.Context, id string) (*CurrentUser, error)
	Authenticate(ctx context.Context, token string) (*Identity, error)
}
