// Package auth verifies the access tokens that identify the acting user.
// Tokens are issued by the account service; Issue exists for operators and tests.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"redsys/internal/shared/biztime"
	apperrors "redsys/internal/shared/errors"
)

const accessTokenName = "access token"

type Claims struct {
	jwt.RegisteredClaims
}

// UserID parses the subject claim.
func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid subject %q", c.Subject)
	}
	return uint(id), nil
}

type JWTService struct {
	secret []byte
	issuer string
}

func NewJWTService(secret, issuer string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		issuer: issuer,
	}
}

// Issue signs an HS256 access token for userID valid for ttl.
func (s *JWTService) Issue(userID uint, ttl time.Duration) (string, error) {
	now := biztime.NowUTC()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Issuer:    s.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, nil
}

// Verify checks signature, issuer and lifetime and returns the acting user id.
// Failures are *errors.AuthError.
func (s *JWTService) Verify(tokenString string) (uint, error) {
	if tokenString == "" {
		return 0, apperrors.NewTokenMissingError()
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(biztime.NowUTC),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, apperrors.NewTokenExpiredError(accessTokenName)
		}
		return 0, apperrors.NewTokenInvalidError(accessTokenName)
	}

	userID, err := claims.UserID()
	if err != nil {
		return 0, apperrors.NewTokenInvalidError(accessTokenName)
	}
	return userID, nil
}
