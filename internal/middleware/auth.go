package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/veridyen/consultdesk/internal/auth"
	"github.com/veridyen/consultdesk/internal/models"
	"github.com/veridyen/consultdesk/internal/session"
)

// Context keys shared between middleware and handlers. Constants so a typo
// fails at the reference, not silently at runtime.
const (
	ContextKeyIdentityRef = "identity_ref"
	ContextKeyEmail       = "email"
	ContextKeyProfile     = "profile"
)

// Auth validates the bearer token and stores the identity claims in the
// request context. Missing or invalid token aborts with 401 — the API
// analogue of the login redirect.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing authorization header",
			})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid authorization format, expected: Bearer <token>",
			})
			return
		}

		claims, err := auth.ParseToken(parts[1], secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
			})
			return
		}

		c.Set(ContextKeyIdentityRef, claims.IdentityRef)
		c.Set(ContextKeyEmail, claims.Email)
		c.Next()
	}
}

// RequireProfile resolves the authenticated identity to its profile and
// stores it in the request context.
//
// An authenticated identity whose profile cannot be resolved is a distinct
// state from an unauthenticated one: the token was valid, so this aborts
// with 403 and a "contact admin" message instead of 401.
func RequireProfile(resolver *session.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		ref := GetIdentityRef(c)
		email := GetEmail(c)

		profile, err := resolver.Resolve(c.Request.Context(), ref, email)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "profile not found, contact admin",
			})
			return
		}

		c.Set(ContextKeyProfile, profile)
		c.Next()
	}
}

// RequireRole gates a route group on the resolved profile's role. Runs
// after RequireProfile; a role mismatch aborts with 403.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile := GetProfile(c)
		if profile == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "profile not found, contact admin",
			})
			return
		}
		for _, role := range roles {
			if profile.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "unauthorized",
		})
	}
}

func GetIdentityRef(c *gin.Context) uuid.UUID {
	val, exists := c.Get(ContextKeyIdentityRef)
	if !exists {
		return uuid.Nil
	}
	id, ok := val.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}

func GetEmail(c *gin.Context) string {
	val, exists := c.Get(ContextKeyEmail)
	if !exists {
		return ""
	}
	email, ok := val.(string)
	if !ok {
		return ""
	}
	return email
}

// GetProfile returns the resolved profile, or nil when RequireProfile has
// not run on this route.
func GetProfile(c *gin.Context) *models.Profile {
	val, exists := c.Get(ContextKeyProfile)
	if !exists {
		return nil
	}
	profile, ok := val.(*models.Profile)
	if !ok {
		return nil
	}
	return profile
}
