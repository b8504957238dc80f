package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/veridyen/consultdesk/internal/auth"
	"github.com/veridyen/consultdesk/internal/repository"
	"github.com/veridyen/consultdesk/internal/session"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler handles signup and login — the only public endpoints apart
// from the probes. They sit outside the Auth middleware because the caller
// has no token yet.
type AuthHandler struct {
	identities repository.IdentityRepository
	resolver   *session.Resolver
	jwtSecret  string
	logger     *zap.Logger
}

func NewAuthHandler(
	identities repository.IdentityRepository,
	resolver *session.Resolver,
	jwtSecret string,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		identities: identities,
		resolver:   resolver,
		jwtSecret:  jwtSecret,
		logger:     logger,
	}
}

type signupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// authResponse is returned by both signup and login. The client sends the
// token as "Authorization: Bearer <token>" on every subsequent request.
type authResponse struct {
	Token string `json:"token"`
}

const tokenTTL = 24 * time.Hour

// Signup handles POST /v1/auth/signup.
//
// Creates the credential record, then resolves it through the session
// layer — which provisions the default client profile on first sight, the
// same path a first authenticated request would take.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing, err := h.identities.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		h.logger.Error("failed to check existing identity", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "signup failed"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("failed to hash password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "signup failed"})
		return
	}

	ident, err := h.identities.Create(c.Request.Context(), req.Email, string(hash))
	if err != nil {
		h.logger.Error("failed to create identity", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "signup failed"})
		return
	}

	if _, err := h.resolver.Resolve(c.Request.Context(), ident.ID, ident.Email); err != nil {
		h.logger.Error("failed to provision profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "signup failed"})
		return
	}

	token, err := auth.GenerateToken(ident.ID, ident.Email, h.jwtSecret, tokenTTL)
	if err != nil {
		h.logger.Error("failed to generate token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "signup failed"})
		return
	}

	c.JSON(http.StatusCreated, authResponse{Token: token})
}

// Login handles POST /v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ident, err := h.identities.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		h.logger.Error("failed to find identity", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	// One generic message for both unknown email and wrong password, so
	// the endpoint does not reveal which emails are registered.
	if ident == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(ident.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	token, err := auth.GenerateToken(ident.ID, ident.Email, h.jwtSecret, tokenTTL)
	if err != nil {
		h.logger.Error("failed to generate token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	c.JSON(http.StatusOK, authResponse{Token: token})
}
