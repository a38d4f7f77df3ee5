package identities_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	apperrors "github.com/Aidin1998/marketgw/common/errors"
	"github.com/Aidin1998/marketgw/internal/identities"
	"github.com/Aidin1998/marketgw/pkg/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func testConfig() identities.Config {
	return identities.Config{
		Username:  "vetty",
		Password:  "password",
		Secret:    testSecret,
		Algorithm: "HS256",
		TTL:       time.Hour,
	}
}

func newService(t *testing.T, opts ...identities.Option) *identities.Service {
	t.Helper()
	svc, err := identities.NewService(zap.NewNop(), testConfig(), opts...)
	require.NoError(t, err)
	return svc
}

func TestNewService_RejectsBadConfig(t *testing.T) {
	for _, alg := range []string{"RS256", "none", "", "HS999"} {
		cfg := testConfig()
		cfg.Algorithm = alg
		_, err := identities.NewService(zap.NewNop(), cfg)
		assert.Error(t, err, alg)
	}

	cfg := testConfig()
	cfg.Secret = ""
	_, err := identities.NewService(zap.NewNop(), cfg)
	assert.Error(t, err)

	cfg = testConfig()
	cfg.TTL = 0
	_, err = identities.NewService(zap.NewNop(), cfg)
	assert.Error(t, err)
}

func TestLoginAndValidate(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	tok, err := svc.Login(ctx, "vetty", "password")
	require.NoError(t, err)
	assert.NotEmpty(t, tok.AccessToken)
	assert.Equal(t, models.TokenTypeBearer, tok.TokenType)

	subject, err := svc.ValidateToken(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "vetty", subject)

	user, err := svc.Authenticate(ctx, tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, &models.User{Username: "vetty", Disabled: false}, user)
}

func TestLogin_IssuedClaims(t *testing.T) {
	issued := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newService(t, identities.WithClock(func() time.Time { return issued }))

	tok, err := svc.Login(context.Background(), "vetty", "password")
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(tok.AccessToken, claims)
	require.NoError(t, err)
	assert.Equal(t, "vetty", claims.Subject)
	assert.Equal(t, issued.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, issued.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)

	again, err := svc.Login(context.Background(), "vetty", "password")
	require.NoError(t, err)
	assert.NotEqual(t, tok.AccessToken, again.AccessToken, "jti must differ per token")
}

func TestLogin_RejectsWrongCredentials(t *testing.T) {
	svc := newService(t)

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "vetty", "nope"},
		{"wrong username", "admin", "password"},
		{"both wrong", "admin", "nope"},
		{"empty", "", ""},
		{"case differs", "Vetty", "password"},
		{"prefix", "vett", "password"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tok, err := svc.Login(context.Background(), tc.username, tc.password)
			assert.Nil(t, tok)
			assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
		})
	}
}

func TestValidateToken_Expired(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	svc := newService(t, identities.WithClock(func() time.Time { return clock() }))

	tok, err := svc.Login(context.Background(), "vetty", "password")
	require.NoError(t, err)

	clock = func() time.Time { return now.Add(2 * time.Hour) }
	_, err = svc.ValidateToken(tok.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func signed(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

// tamper swaps the payload of token for one naming another subject while
// keeping the original signature.
func tamper(t *testing.T, token string, exp *jwt.NumericDate) string {
	t.Helper()
	other := signed(t, jwt.SigningMethodHS256, []byte("x"), jwt.RegisteredClaims{Subject: "admin", ExpiresAt: exp})
	orig := strings.Split(token, ".")
	forged := strings.Split(other, ".")
	require.Len(t, orig, 3)
	return orig[0] + "." + forged[1] + "." + orig[2]
}

func TestValidateToken_Rejects(t *testing.T) {
	svc := newService(t)
	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))

	valid, err := svc.Login(context.Background(), "vetty", "password")
	require.NoError(t, err)

	cases := map[string]string{
		"garbage":        "not-a-token",
		"empty":          "",
		"wrong secret":   signed(t, jwt.SigningMethodHS256, []byte("other"), jwt.RegisteredClaims{Subject: "vetty", ExpiresAt: exp}),
		"wrong hmac alg": signed(t, jwt.SigningMethodHS512, []byte(testSecret), jwt.RegisteredClaims{Subject: "vetty", ExpiresAt: exp}),
		"alg none":       signed(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.RegisteredClaims{Subject: "vetty", ExpiresAt: exp}),
		"missing sub":    signed(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{ExpiresAt: exp}),
		"missing exp":    signed(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{Subject: "vetty"}),
		"tampered":       tamper(t, valid.AccessToken, exp),
	}

	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ValidateToken(token)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrInvalidToken))

			_, err = svc.Authenticate(context.Background(), token)
			assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
		})
	}
}
