package application

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/shopcore/services/internal/users/domain"
)

type RegisterRequest struct {
	Email    string
	Password string
	FullName string
	Address  domain.Address
}

type LoginResult struct {
	UserID int64
	Email  string
	Token  string
}

// Service handles registration, login and profile lookup. Login issues a
// signed token; validating tokens on inbound requests is out of scope
// here, callers treat it as opaque.
type Service struct {
	log       *slog.Logger
	repo      UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewService(log *slog.Logger, repo UserRepository, jwtSecret []byte) *Service {
	return &Service{
		log:       log,
		repo:      repo,
		jwtSecret: jwtSecret,
		tokenTTL:  24 * time.Hour,
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (domain.User, error) {
	if err := validateRegister(req); err != nil {
		return domain.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(req.FullName),
		Address:      req.Address,
		CreatedAt:    time.Now().UTC(),
	}
	saved, err := s.repo.Create(ctx, user)
	if err != nil {
		return domain.User{}, err
	}

	s.log.Info("user registered", "user_id", saved.ID)
	return saved, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return LoginResult{}, &ValidationError{Field: "credentials", Message: "email and password are required"}
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   strconv.FormatInt(user.ID, 10),
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{UserID: user.ID, Email: user.Email, Token: signed}, nil
}

func (s *Service) GetUser(ctx context.Context, id int64) (domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func validateRegister(req RegisterRequest) error {
	if strings.TrimSpace(req.Email) == "" {
		return &ValidationError{Field: "email", Message: "Email is required"}
	}
	if strings.TrimSpace(req.Password) == "" {
		return &ValidationError{Field: "password", Message: "Password is required"}
	}
	if strings.TrimSpace(req.FullName) == "" {
		return &ValidationError{Field: "fullName", Message: "Full name is required"}
	}
	addr := req.Address
	if strings.TrimSpace(addr.Street) == "" || strings.TrimSpace(addr.City) == "" ||
		strings.TrimSpace(addr.State) == "" || strings.TrimSpace(addr.PostalCode) == "" ||
		strings.TrimSpace(addr.Country) == "" {
		return &ValidationError{Field: "address", Message: "Address fields are required"}
	}
	return nil
}
