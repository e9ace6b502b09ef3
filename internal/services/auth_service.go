package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"catalog/internal/common"
	"catalog/internal/models"
	"catalog/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned by Login for an unknown user, a wrong password, and an
// inactive account alike.
var ErrInvalidCredentials = errors.New("invalid username or password")

const minPasswordLength = 8

// AuthService registers users and issues access tokens.
type AuthService interface {
	Register(ctx context.Context, in models.RegisterInput) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.TokenResponse, error)
	CreateAdmin(ctx context.Context, in models.RegisterInput) (*models.User, error)
}

// TokenClaims are the claims carried by an access token. Subject is the user id.
type TokenClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type authService struct {
	store      repositories.Store
	jwtSecret  []byte
	tokenTTL   time.Duration
	issuer     string
	bcryptCost int
	logger     *zap.Logger
}

func NewAuthService(store repositories.Store, jwtSecret string, tokenTTL time.Duration, issuer string, logger *zap.Logger) AuthService {
	return &authService{
		store:      store,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
		issuer:     issuer,
		bcryptCost: bcrypt.DefaultCost,
		logger:     logger,
	}
}

// Register creates an active customer account.
func (s *authService) Register(ctx context.Context, in models.RegisterInput) (*models.User, error) {
	return s.create(ctx, in, false)
}

// CreateAdmin creates an active admin account. It is only reachable from the admin CLI.
func (s *authService) CreateAdmin(ctx context.Context, in models.RegisterInput) (*models.User, error) {
	return s.create(ctx, in, true)
}

func (s *authService) create(ctx context.Context, in models.RegisterInput, admin bool) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := common.ValidateRequiredString(in.Username, "username"); err != nil {
		return nil, err
	}
	if err := common.ValidateRequiredString(in.Email, "email"); err != nil {
		return nil, err
	}
	if len(in.Password) < minPasswordLength {
		return nil, common.Invalid("password", "must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:       in.Username,
		Email:          in.Email,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		HashedPassword: string(hash),
		IsAdmin:        admin,
		IsCustomer:     !admin,
		IsActive:       true,
	}
	if err := s.store.Users().Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.Int64("user_id", user.ID), zap.Bool("admin", admin))
	return user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*models.TokenResponse, error) {
	user, err := s.store.Users().GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, common.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)
	claims := TokenClaims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   strconv.FormatInt(user.ID, 10),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &models.TokenResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokenTTL.Seconds()),
	}, nil
}
