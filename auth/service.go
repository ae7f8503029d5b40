// Package auth registers accounts, checks credentials and verifies bearer
// tokens.
package auth

import (
	"context"
	"strings"
	"time"

	"food-ordering-api/apperrors"
	"food-ordering-api/models"
	"food-ordering-api/store"
	"food-ordering-api/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Mobile   string `json:"mobile" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Session is what signup and login hand back to the client.
type Session struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

var signupMessages = map[string]string{
	"name":         "All fields are required (name, mobile, email, password)",
	"mobile":       "All fields are required (name, mobile, email, password)",
	"email":        "All fields are required (name, mobile, email, password)",
	"password":     "All fields are required (name, mobile, email, password)",
	"password.min": "Password must be at least 6 characters long",
}

// maxPasswordBytes is the most bcrypt will hash.
const maxPasswordBytes = 72

var loginMessages = map[string]string{
	"email":    "Email and password are required",
	"password": "Email and password are required",
}

type Service struct {
	users  store.UserStore
	tokens *TokenIssuer
	cost   int
	now    func() time.Time

	// dummyHash is compared against when the email is unknown so both
	// login failures take the same time.
	dummyHash []byte
}

func NewService(users store.UserStore, tokens *TokenIssuer, cost int) (*Service, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
	if err != nil {
		return nil, err
	}
	return &Service{
		users:     users,
		tokens:    tokens,
		cost:      cost,
		now:       time.Now,
		dummyHash: dummy,
	}, nil
}

func (s *Service) Register(ctx context.Context, req SignupRequest) (*Session, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validation.StructMessages(req, signupMessages); err != nil {
		return nil, err
	}
	if len(req.Password) > maxPasswordBytes {
		return nil, apperrors.NewValidationError("Password must be at most 72 bytes")
	}

	_, err := s.users.FindUserByEmail(ctx, req.Email)
	if err == nil {
		return nil, apperrors.NewConflictError("User already exists")
	}
	if _, notFound := apperrors.IsNotFoundError(err); !notFound {
		return nil, apperrors.Wrap("looking up user", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, apperrors.NewStoreError("hashing password", err)
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, apperrors.NewStoreError("generating user id", err)
	}

	user := &models.User{
		ID:           id.String(),
		Name:         req.Name,
		Mobile:       req.Mobile,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if _, ok := apperrors.IsConflictError(err); ok {
			return nil, apperrors.NewConflictError("User already exists")
		}
		return nil, apperrors.Wrap("creating user", err)
	}

	return s.session(user)
}

// Authenticate returns ErrInvalidCredentials for both an unknown email and
// a wrong password.
func (s *Service) Authenticate(ctx context.Context, req LoginRequest) (*Session, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validation.StructMessages(req, loginMessages); err != nil {
		return nil, err
	}

	user, err := s.users.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); !ok {
			return nil, apperrors.Wrap("looking up user", err)
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(req.Password))
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.session(user)
}

// Verify resolves a bearer token to the account it was issued for.
func (s *Service) Verify(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, apperrors.ErrMissingToken
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindUserByID(ctx, claims.UserID)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap("looking up user", err)
	}
	return user, nil
}

func (s *Service) session(user *models.User) (*Session, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, apperrors.NewStoreError("signing token", err)
	}
	return &Session{Token: token, User: user.Public()}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
