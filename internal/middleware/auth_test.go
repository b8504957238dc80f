package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/veridyen/consultdesk/internal/auth"
	"github.com/veridyen/consultdesk/internal/models"
	"github.com/veridyen/consultdesk/internal/session"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

type stubProfileRepo struct {
	profile *models.Profile
	err     error
}

func (s *stubProfileRepo) GetByIdentityRef(context.Context, uuid.UUID) (*models.Profile, error) {
	return s.profile, s.err
}

func (s *stubProfileRepo) GetByID(context.Context, uuid.UUID) (*models.Profile, error) {
	return s.profile, s.err
}

func (s *stubProfileRepo) GetConsultantByEmail(context.Context, string) (*models.Profile, error) {
	return nil, nil
}

func (s *stubProfileRepo) Provision(context.Context, uuid.UUID, string, string, string) (*models.Profile, error) {
	return s.profile, s.err
}

func (s *stubProfileRepo) CountryConsultant(context.Context, uuid.UUID) (*models.Profile, error) {
	return nil, nil
}

func (s *stubProfileRepo) ConsultantClients(context.Context, uuid.UUID, uuid.UUID, string, int, int) ([]models.Profile, error) {
	return nil, nil
}

// guardedRouter builds the full gate chain: token, profile, role.
func guardedRouter(t *testing.T, repo *stubProfileRepo, requiredRole string, handlerRan *bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	resolver := session.NewResolver(repo, nil, zap.NewNop())

	r := gin.New()
	group := r.Group("/guarded")
	group.Use(Auth(testSecret), RequireProfile(resolver))
	if requiredRole != "" {
		group.Use(RequireRole(requiredRole))
	}
	group.GET("", func(c *gin.Context) {
		*handlerRan = true
		c.JSON(http.StatusOK, gin.H{"secret": "content"})
	})
	return r
}

func bearerFor(t *testing.T, ref uuid.UUID) string {
	t.Helper()
	token, err := auth.GenerateToken(ref, "user@example.com", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return "Bearer " + token
}

func TestGateMissingToken(t *testing.T) {
	var ran bool
	r := guardedRouter(t, &stubProfileRepo{}, "", &ran)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if ran {
		t.Error("handler ran without a token")
	}
}

func TestGateMalformedHeader(t *testing.T) {
	var ran bool
	r := guardedRouter(t, &stubProfileRepo{}, "", &ran)

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestGateProfileResolutionFails(t *testing.T) {
	// Valid token, but the profile cannot be resolved: a distinct state
	// from unauthenticated, so 403 with the contact-admin message, not 401.
	var ran bool
	r := guardedRouter(t, &stubProfileRepo{err: errors.New("store down")}, "", &ran)

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", bearerFor(t, uuid.New()))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
	if !strings.Contains(w.Body.String(), "contact admin") {
		t.Errorf("body = %s, want contact-admin message", w.Body.String())
	}
	if ran {
		t.Error("handler ran without a profile")
	}
}

func TestGateRoleMismatch(t *testing.T) {
	ref := uuid.New()
	repo := &stubProfileRepo{profile: &models.Profile{
		ID:              uuid.New(),
		AuthIdentityRef: ref,
		Role:            models.RoleClient,
	}}

	var ran bool
	r := guardedRouter(t, repo, models.RoleAdmin, &ran)

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", bearerFor(t, ref))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
	if ran {
		t.Error("client role reached admin-guarded content")
	}
	if strings.Contains(w.Body.String(), "secret") {
		t.Error("guarded content leaked in response body")
	}
}

func TestGateAuthorized(t *testing.T) {
	ref := uuid.New()
	repo := &stubProfileRepo{profile: &models.Profile{
		ID:              uuid.New(),
		AuthIdentityRef: ref,
		Role:            models.RoleAdmin,
	}}

	var ran bool
	r := guardedRouter(t, repo, models.RoleAdmin, &ran)

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", bearerFor(t, ref))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if !ran {
		t.Error("handler did not run for an authorized caller")
	}
}

func TestGetProfileAbsent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if GetProfile(c) != nil {
		t.Error("GetProfile on bare context should be nil")
	}
	if GetIdentityRef(c) != uuid.Nil {
		t.Error("GetIdentityRef on bare context should be Nil")
	}
	if GetEmail(c) != "" {
		t.Error("GetEmail on bare context should be empty")
	}
}
