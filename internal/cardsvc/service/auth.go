package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/avvvet/cardcraft-services/internal/cardsvc/models"
	"github.com/avvvet/cardcraft-services/internal/cardsvc/store"
	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Session is returned by signup and login.
type Session struct {
	Token string          `json:"token"`
	User  models.UserView `json:"user"`
}

type AuthService struct {
	users     UserStore
	tokenAuth *jwtauth.JWTAuth
	ttl       time.Duration

	// first-user-is-admin check and insert must not interleave
	signupMu sync.Mutex
}

func NewAuthService(users UserStore, secret string, ttl time.Duration) *AuthService {
	if secret == "" {
		log.Warn("JWT_SECRET_KEY is empty, tokens are trivially forgeable")
	}
	return &AuthService{
		users:     users,
		tokenAuth: jwtauth.New("HS256", []byte(secret), nil),
		ttl:       ttl,
	}
}

func (s *AuthService) TokenAuth() *jwtauth.JWTAuth {
	return s.tokenAuth
}

// Signup registers a user. The very first account becomes admin.
func (s *AuthService) Signup(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password required", ErrValidation)
	}

	s.signupMu.Lock()
	defer s.signupMu.Unlock()

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email already registered", ErrAlreadyExists)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	count, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	role := models.RoleUser
	if count == 0 {
		role = models.RoleAdmin
	}

	u := &models.User{Email: email, PasswordHash: string(hash), Role: role}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, fmt.Errorf("%w: email already registered", ErrAlreadyExists)
		}
		return nil, err
	}
	log.Infof("user %s signed up with role %s", u.ID.Hex(), role)

	return s.session(u)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	return s.session(u)
}

// User loads the account behind a token subject.
func (s *AuthService) User(ctx context.Context, id string) (*models.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("%w: unknown user", ErrUnauthorized)
	}
	return u, nil
}

// Token signs a token with sub and role claims.
func (s *AuthService) Token(u *models.User) (string, error) {
	claims := map[string]interface{}{
		"sub":  u.ID.Hex(),
		"role": u.Role,
	}
	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiry(claims, time.Now().Add(s.ttl))

	_, tokenString, err := s.tokenAuth.Encode(claims)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tokenString, nil
}

func (s *AuthService) session(u *models.User) (*Session, error) {
	token, err := s.Token(u)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, User: u.View()}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
