package identities

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	apperrors "github.com/Aidin1998/marketgw/common/errors"
	"github.com/Aidin1998/marketgw/pkg/metrics"
	"github.com/Aidin1998/marketgw/pkg/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IdentityService defines credential and token operations.
type IdentityService interface {
	Login(ctx context.Context, username, password string) (*models.Token, error)
	ValidateToken(token string) (string, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// Config holds the single configured credential pair and token settings.
type Config struct {
	Username  string
	Password  string
	Secret    string
	Algorithm string
	TTL       time.Duration
}

// Service implements IdentityService
type Service struct {
	logger   *zap.Logger
	username []byte
	password []byte
	secret   []byte
	method   jwt.SigningMethod
	ttl      time.Duration
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for issuing and checking tokens.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new IdentityService
func NewService(logger *zap.Logger, cfg Config, opts ...Option) (*Service, error) {
	method := jwt.GetSigningMethod(cfg.Algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", cfg.Algorithm)
	}
	if cfg.Secret == "" {
		return nil, fmt.Errorf("signing secret must not be empty")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", cfg.TTL)
	}

	svc := &Service{
		logger:   logger.Named("identities"),
		username: []byte(cfg.Username),
		password: []byte(cfg.Password),
		secret:   []byte(cfg.Secret),
		method:   method,
		ttl:      cfg.TTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}

	return svc, nil
}

// Login checks the credential pair and issues a signed bearer token.
func (s *Service) Login(ctx context.Context, username, password string) (*models.Token, error) {
	// Evaluate both comparisons so timing does not reveal which field failed.
	userOK := subtle.ConstantTimeCompare([]byte(username), s.username)
	passOK := subtle.ConstantTimeCompare([]byte(password), s.password)
	if userOK&passOK != 1 {
		metrics.LoginAttempts.WithLabelValues("rejected").Inc()
		s.logger.Info("login rejected", zap.String("username", username))
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.generateToken(username)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.LoginAttempts.WithLabelValues("accepted").Inc()
	s.logger.Debug("token issued", zap.String("username", username))

	return &models.Token{AccessToken: token, TokenType: models.TokenTypeBearer}, nil
}

// ValidateToken verifies signature, algorithm and expiry and returns the
// subject. Every failure is reported as ErrInvalidToken.
func (s *Service) ValidateToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		s.logger.Debug("token rejected", zap.Error(err))
		return "", fmt.Errorf("%w: %w", apperrors.ErrInvalidToken, err)
	}
	if !token.Valid {
		return "", apperrors.ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", apperrors.ErrInvalidToken)
	}

	return claims.Subject, nil
}

// Authenticate resolves a bearer token into the principal it names.
func (s *Service) Authenticate(ctx context.Context, token string) (*models.User, error) {
	subject, err := s.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	return &models.User{Username: subject, Disabled: false}, nil
}

// generateToken signs a token for subject
func (s *Service) generateToken(subject string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		ID:        uuid.NewString(),
	}

	tokenString, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}
