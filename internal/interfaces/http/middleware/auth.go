package middleware

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/gin-gonic/gin"

	"redsys/internal/domain/user"
	"redsys/internal/domain/workflow"
	"redsys/internal/shared/constants"
	"redsys/internal/shared/errors"
	"redsys/internal/shared/logger"
	"redsys/internal/shared/utils"
)

// TokenVerifier resolves a bearer token to the id of the acting user.
type TokenVerifier interface {
	Verify(token string) (uint, error)
}

// UserLookup is the part of the user repository the middleware needs.
type UserLookup interface {
	GetByID(ctx context.Context, id uint) (*user.User, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
	users    UserLookup
	logger   logger.Interface
}

func NewAuthMiddleware(verifier TokenVerifier, users UserLookup, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		users:    users,
		logger:   logger,
	}
}

// RequireAuth resolves the bearer token to an active user and stores the
// resulting workflow.Actor in the context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader(constants.HeaderAuthorization))
		if err != nil {
			m.abort(c, err)
			return
		}

		userID, err := m.verifier.Verify(token)
		if err != nil {
			m.abort(c, err)
			return
		}

		u, err := m.users.GetByID(c.Request.Context(), userID)
		if err != nil {
			if stderrors.Is(err, user.ErrUserNotFound) {
				m.abort(c, errors.NewTokenInvalidError("access token"))
				return
			}
			m.logger.Errorw("failed to load acting user", "user_id", userID, "error", err)
			m.abort(c, errors.NewInternalError("failed to resolve user"))
			return
		}

		if err := u.EnsureCanAct(); err != nil {
			m.abort(c, errors.NewAccountInactiveError())
			return
		}

		c.Set(constants.ContextKeyUserID, u.ID())
		c.Set(constants.ContextKeyActor, workflow.NewActor(u.ID(), u.Role()))

		c.Next()
	}
}

func (m *AuthMiddleware) abort(c *gin.Context, err error) {
	if errors.ShouldLogAuthError(err) {
		m.logger.Warnw("request authentication failed", "path", c.Request.URL.Path, "error", err)
	}
	utils.ErrorResponseWithError(c, err)
	c.Abort()
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errors.NewTokenMissingError()
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errors.NewTokenInvalidError("authorization header")
	}
	return strings.TrimSpace(token), nil
}

// GetActor returns the actor stored by RequireAuth.
func GetActor(c *gin.Context) (workflow.Actor, bool) {
	value, exists := c.Get(constants.ContextKeyActor)
	if !exists {
		return workflow.Actor{}, false
	}
	actor, ok := value.(workflow.Actor)
	return actor, ok
}
