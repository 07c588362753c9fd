package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redsys/internal/shared/biztime"
	apperrors "redsys/internal/shared/errors"
)

const testSecret = "test-secret"

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc := NewJWTService(testSecret, "redsys")

	token, err := svc.Issue(42, time.Hour)
	require.NoError(t, err)

	userID, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestJWTService_Verify_Failures(t *testing.T) {
	svc := NewJWTService(testSecret, "redsys")

	otherSecret, err := NewJWTService("other", "redsys").Issue(1, time.Hour)
	require.NoError(t, err)
	otherIssuer, err := NewJWTService(testSecret, "elsewhere").Issue(1, time.Hour)
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "redsys",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "1",
			Issuer:  "redsys",
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name     string
		token    string
		wantType apperrors.ErrorType
	}{
		{"empty", "", apperrors.ErrorTypeTokenMissing},
		{"garbage", "not-a-jwt", apperrors.ErrorTypeTokenInvalid},
		{"wrong secret", otherSecret, apperrors.ErrorTypeTokenInvalid},
		{"wrong issuer", otherIssuer, apperrors.ErrorTypeTokenInvalid},
		{"missing subject", noSubject, apperrors.ErrorTypeTokenInvalid},
		{"missing expiry", noExpiry, apperrors.ErrorTypeTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Verify(tt.token)
			require.Error(t, err)
			authErr := apperrors.GetAuthError(err)
			require.NotNil(t, authErr)
			assert.Equal(t, tt.wantType, authErr.Type)
		})
	}
}

func TestJWTService_Verify_Expired(t *testing.T) {
	svc := NewJWTService(testSecret, "redsys")

	issuedAt := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	restore := biztime.SetClock(func() time.Time { return issuedAt })
	token, err := svc.Issue(5, time.Minute)
	restore()
	require.NoError(t, err)

	restore = biztime.SetClock(func() time.Time { return issuedAt.Add(2 * time.Minute) })
	defer restore()

	_, err = svc.Verify(token)
	require.Error(t, err)
	authErr := apperrors.GetAuthError(err)
	require.NotNil(t, authErr)
	assert.Equal(t, apperrors.ErrorTypeTokenExpired, authErr.Type)
	assert.False(t, apperrors.ShouldLogAuthError(err))
}
