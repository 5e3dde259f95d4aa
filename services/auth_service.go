package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/blogem/boardhook/authenticator"
	"github.com/blogem/boardhook/models"
	"github.com/blogem/boardhook/repositories"
	"github.com/blogem/boardhook/trello"
)

// ClientConfig is what the browser needs to start the Trello authorize flow
type ClientConfig struct {
	TrelloAPIKey string `json:"trelloApiKey"`
	AppURL       string `json:"appUrl"`
}

// ConnectResult is returned after a Trello token was validated and stored
type ConnectResult struct {
	Success    bool                `json:"success"`
	TrelloUser models.TrelloMember `json:"trelloUser"`
}

// AuthService interface defines account and credential operations
type AuthService interface {
	Register(ctx context.Context, form *models.RegisterForm) (*models.AuthResult, error)
	Login(ctx context.Context, form *models.LoginForm) (*models.AuthResult, error)
	Authenticate(ctx context.Context, authHeader string) (*models.User, error)
	ConnectTrello(ctx context.Context, user *models.User, trelloToken string) (*ConnectResult, error)
	UpdateAvatar(ctx context.Context, user *models.User, avatar string) error
	SignInWithClaims(ctx context.Context, claims authenticator.Claims) (*models.AuthResult, error)
	Credential(user *models.User) (trello.Credential, error)
	Config() ClientConfig
}

// authService implements AuthService
type authService struct {
	users  repositories.UserRepository
	api    trello.API
	issuer *authenticator.TokenIssuer
	opts   Options
}

// NewAuthService creates a new auth service
func NewAuthService(users repositories.UserRepository, api trello.API, issuer *authenticator.TokenIssuer, opts Options) AuthService {
	return &authService{
		users:  users,
		api:    api,
		issuer: issuer,
		opts:   opts,
	}
}

// Register creates an account with a bcrypt password hash and signs the user in
func (s *authService) Register(ctx context.Context, form *models.RegisterForm) (*models.AuthResult, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return nil, invalidInput(errs...)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        strings.TrimSpace(form.Email),
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(form.Name),
		Avatar:       form.Avatar,
		CreatedAt:    timeNow().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserExists) {
			return nil, &Error{Kind: ErrConflict, Message: "Email already registered"}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Printf("User registered: %s", user.Email)
	return s.signIn(user)
}

// Login checks the password and issues a bearer token
func (s *authService) Login(ctx context.Context, form *models.LoginForm) (*models.AuthResult, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return nil, invalidInput(errs...)
	}

	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(form.Email))
	if errors.Is(err, repositories.ErrUserNotFound) {
		return nil, unauthorized("Invalid email or password")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	// accounts created through single sign-on have no password
	if user.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.Password)) != nil {
		return nil, unauthorized("Invalid email or password")
	}

	return s.signIn(user)
}

// Authenticate resolves the Authorization header to a stored account
func (s *authService) Authenticate(ctx context.Context, authHeader string) (*models.User, error) {
	token, err := authenticator.BearerToken(authHeader)
	if err != nil {
		return nil, unauthorized("Missing or invalid Authorization header")
	}

	email, err := s.issuer.Verify(token)
	if err != nil {
		return nil, unauthorized("Invalid or expired token")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return nil, unauthorized("User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

// ConnectTrello validates the token against Trello and stores it on the account
func (s *authService) ConnectTrello(ctx context.Context, user *models.User, trelloToken string) (*ConnectResult, error) {
	trelloToken = strings.TrimSpace(trelloToken)
	if trelloToken == "" {
		return nil, invalidInput("trelloToken is required")
	}

	member, err := s.api.GetMember(ctx, trello.Credential{Key: s.opts.TrelloAPIKey, Token: trelloToken})
	if err != nil {
		var apiErr *trello.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			return nil, invalidInput("Invalid Trello token")
		}
		return nil, err
	}

	user.TrelloToken = trelloToken
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save trello token: %w", err)
	}

	log.Printf("Trello connected for %s as %s", user.Email, member.Username)
	return &ConnectResult{Success: true, TrelloUser: *member}, nil
}

// UpdateAvatar replaces the stored avatar (a base64 data URL)
func (s *authService) UpdateAvatar(ctx context.Context, user *models.User, avatar string) error {
	if avatar == "" {
		return invalidInput("avatar (base64) is required")
	}
	user.Avatar = avatar
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to save avatar: %w", err)
	}
	return nil
}

// SignInWithClaims signs in the account matching an identity provider's
// verified email, creating a password-less account on first sight.
func (s *authService) SignInWithClaims(ctx context.Context, claims authenticator.Claims) (*models.AuthResult, error) {
	email := strings.TrimSpace(claims.Email())
	if email == "" {
		return nil, unauthorized("Identity provider did not return an email")
	}
	// only a verified email may reach an account
	if !claims.EmailVerified() {
		return nil, unauthorized("Identity provider did not verify the email")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repositories.ErrUserNotFound) {
		user = &models.User{
			Email:     email,
			Name:      claims.DisplayName(),
			CreatedAt: timeNow().UTC(),
		}
		if err := s.users.Create(ctx, user); err != nil && !errors.Is(err, repositories.ErrUserExists) {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		log.Printf("User created via single sign-on: %s", email)
	} else if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	return s.signIn(user)
}

// Credential returns the Trello credential to act for the user
func (s *authService) Credential(user *models.User) (trello.Credential, error) {
	token := user.TrelloToken
	if !s.opts.MultiTenant && token == "" {
		token = s.opts.TrelloToken
	}
	if token == "" {
		return trello.Credential{}, invalidInput("Trello account not connected")
	}
	return trello.Credential{Key: s.opts.TrelloAPIKey, Token: token}, nil
}

// Config returns the public client configuration
func (s *authService) Config() ClientConfig {
	return ClientConfig{
		TrelloAPIKey: s.opts.TrelloAPIKey,
		AppURL:       s.opts.AppURL,
	}
}

func (s *authService) signIn(user *models.User) (*models.AuthResult, error) {
	token, err := s.issuer.Issue(user.Email)
	if err != nil {
		return nil, err
	}
	return &models.AuthResult{Token: token, User: user.Profile()}, nil
}
