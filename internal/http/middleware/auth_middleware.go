package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware
const (
	ActorKey     = "actor"
	UserIDKey    = "user_id"
	UserRoleKey  = "user_role"
	SessionIDKey = "session_id"
)

// ActorFrom returns the authenticated actor of the request, if any
func ActorFrom(c *gin.Context) (domain.Actor, bool) {
	v, ok := c.Get(ActorKey)
	if !ok {
		return nil, false
	}
	actor, ok := v.(domain.Actor)
	return actor, ok
}

// AuthMiddleware creates authentication middleware. The bearer token must
// be valid, its session must still exist in Redis and the user must still
// exist; the stored user, not the token, decides the actor's scope.
func AuthMiddleware(tokenSvc domain.TokenService, sessionRepo domain.SessionRepository, userRepo domain.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}
		authenticate(c, authHeader, tokenSvc, sessionRepo, userRepo)
	}
}

// OptionalAuthMiddleware authenticates when an Authorization header is
// present and lets anonymous requests through.
func OptionalAuthMiddleware(tokenSvc domain.TokenService, sessionRepo domain.SessionRepository, userRepo domain.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}
		authenticate(c, authHeader, tokenSvc, sessionRepo, userRepo)
	}
}

func authenticate(c *gin.Context, authHeader string, tokenSvc domain.TokenService, sessionRepo domain.SessionRepository, userRepo domain.UserRepository) {
	tokenParts := strings.SplitN(authHeader, " ", 2)
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
		return
	}

	claims, err := tokenSvc.ValidateToken(tokenParts[1])
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTokenExpired):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
		case errors.Is(err, domain.ErrTokenInvalid), errors.Is(err, domain.ErrTokenMalformed):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		default:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token validation failed"})
		}
		return
	}

	session, err := sessionRepo.FindByID(c.Request.Context(), claims.SessionID)
	if err != nil || session == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session invalid or expired"})
		return
	}
	if session.UserID != claims.UserID {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session user mismatch"})
		return
	}

	user, err := userRepo.FindByID(c.Request.Context(), claims.UserID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User no longer exists"})
		return
	}
	actor, err := domain.ActorFromUser(user)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	c.Set(ActorKey, actor)
	c.Set(UserIDKey, user.ID)
	c.Set(UserRoleKey, string(user.Role))
	c.Set(SessionIDKey, session.ID)

	c.Next()
}
