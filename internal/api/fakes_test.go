package api

import (
	"context"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/veridyen/consultdesk/internal/auth"
	"github.com/veridyen/consultdesk/internal/facade"
	"github.com/veridyen/consultdesk/internal/models"
	"github.com/veridyen/consultdesk/internal/repository"
	"github.com/veridyen/consultdesk/internal/session"
	"go.uber.org/zap"
)

const testSecret = "router-test-secret"

// counter is shared across every fake so a test can assert an endpoint
// never reached the backend at all.
type counter struct{ calls int }

type fakeProfiles struct {
	c           *counter
	byRef       map[uuid.UUID]*models.Profile
	consultants map[string]*models.Profile
	roster      []models.Profile
}

func (f *fakeProfiles) GetByIdentityRef(_ context.Context, ref uuid.UUID) (*models.Profile, error) {
	f.c.calls++
	return f.byRef[ref], nil
}

func (f *fakeProfiles) GetByID(context.Context, uuid.UUID) (*models.Profile, error) {
	f.c.calls++
	return nil, nil
}

func (f *fakeProfiles) GetConsultantByEmail(_ context.Context, email string) (*models.Profile, error) {
	f.c.calls++
	return f.consultants[email], nil
}

func (f *fakeProfiles) Provision(_ context.Context, ref uuid.UUID, email, firstName, language string) (*models.Profile, error) {
	f.c.calls++
	if p, ok := f.byRef[ref]; ok {
		return p, nil
	}
	p := &models.Profile{
		ID:              uuid.New(),
		AuthIdentityRef: ref,
		Role:            models.RoleClient,
		FirstName:       firstName,
		Email:           email,
		Language:        language,
	}
	f.byRef[ref] = p
	return p, nil
}

func (f *fakeProfiles) CountryConsultant(context.Context, uuid.UUID) (*models.Profile, error) {
	f.c.calls++
	return nil, nil
}

func (f *fakeProfiles) ConsultantClients(context.Context, uuid.UUID, uuid.UUID, string, int, int) ([]models.Profile, error) {
	f.c.calls++
	return f.roster, nil
}

type fakeApplications struct {
	c        *counter
	created  []repository.NewApplication
	existing map[uuid.UUID]*models.Application
	byClient []models.Application
}

func (f *fakeApplications) Create(_ context.Context, app repository.NewApplication) (*models.Application, error) {
	f.c.calls++
	f.created = append(f.created, app)
	cid := app.ConsultantID
	return &models.Application{
		ID:           uuid.New(),
		ClientID:     app.ClientID,
		ConsultantID: &cid,
		Status:       app.Status,
	}, nil
}

func (f *fakeApplications) AssignConsultant(_ context.Context, applicationID, consultantID uuid.UUID) (*models.Application, error) {
	f.c.calls++
	app, ok := f.existing[applicationID]
	if !ok {
		return nil, nil
	}
	app.ConsultantID = &consultantID
	return app, nil
}

func (f *fakeApplications) ListByClient(context.Context, uuid.UUID) ([]models.Application, error) {
	f.c.calls++
	return f.byClient, nil
}

type fakeMessages struct {
	c    *counter
	rows []models.Message
	sent []models.Message
}

func (f *fakeMessages) Create(_ context.Context, senderID, recipientID uuid.UUID, body, messageType, originalLanguage string) (*models.Message, error) {
	f.c.calls++
	msg := models.Message{
		ID:               uuid.New(),
		SenderID:         senderID,
		RecipientID:      recipientID,
		Message:          body,
		MessageType:      messageType,
		OriginalLanguage: originalLanguage,
	}
	f.sent = append(f.sent, msg)
	return &msg, nil
}

func (f *fakeMessages) ListForParticipant(_ context.Context, participantID uuid.UUID, pairID *uuid.UUID) ([]models.Message, error) {
	f.c.calls++
	out := make([]models.Message, 0)
	for _, m := range f.rows {
		if pairID != nil {
			a, p := participantID, *pairID
			if (m.SenderID == a && m.RecipientID == p) || (m.SenderID == p && m.RecipientID == a) {
				out = append(out, m)
			}
			continue
		}
		if m.SenderID == participantID || m.RecipientID == participantID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeDocuments struct {
	c        *counter
	byClient map[uuid.UUID][]models.ClientDocument
	byID     map[uuid.UUID]*models.ClientDocument
}

func (f *fakeDocuments) ListByClient(_ context.Context, clientID uuid.UUID) ([]models.ClientDocument, error) {
	f.c.calls++
	docs := f.byClient[clientID]
	if docs == nil {
		docs = make([]models.ClientDocument, 0)
	}
	return docs, nil
}

func (f *fakeDocuments) UpdateStatus(_ context.Context, documentID uuid.UUID, status string, notes *string) (*models.ClientDocument, error) {
	f.c.calls++
	doc, ok := f.byID[documentID]
	if !ok {
		return nil, nil
	}
	doc.Status = status
	if notes != nil {
		doc.ConsultantNotes = notes
	}
	return doc, nil
}

type fakeNotifications struct {
	c    *counter
	rows []models.ClientNotification
}

func (f *fakeNotifications) ListByClient(_ context.Context, clientID uuid.UUID, notificationType string) ([]models.ClientNotification, error) {
	f.c.calls++
	out := make([]models.ClientNotification, 0)
	for _, n := range f.rows {
		if n.ClientID == clientID && n.NotificationType == notificationType {
			out = append(out, n)
		}
	}
	return out, nil
}

type fakeIdentities struct {
	c       *counter
	byEmail map[string]*models.AuthIdentity
}

func (f *fakeIdentities) Create(_ context.Context, email, passwordHash string) (*models.AuthIdentity, error) {
	f.c.calls++
	ident := &models.AuthIdentity{ID: uuid.New(), Email: email, PasswordHash: passwordHash}
	f.byEmail[email] = ident
	return ident, nil
}

func (f *fakeIdentities) GetByEmail(_ context.Context, email string) (*models.AuthIdentity, error) {
	f.c.calls++
	return f.byEmail[email], nil
}

// testEnv is a fully wired router over fakes.
type testEnv struct {
	counter       *counter
	profiles      *fakeProfiles
	applications  *fakeApplications
	messages      *fakeMessages
	documents     *fakeDocuments
	notifications *fakeNotifications
	identities    *fakeIdentities
	router        *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c := &counter{}
	env := &testEnv{
		counter:       c,
		profiles:      &fakeProfiles{c: c, byRef: map[uuid.UUID]*models.Profile{}, consultants: map[string]*models.Profile{}},
		applications:  &fakeApplications{c: c, existing: map[uuid.UUID]*models.Application{}},
		messages:      &fakeMessages{c: c},
		documents:     &fakeDocuments{c: c, byClient: map[uuid.UUID][]models.ClientDocument{}, byID: map[uuid.UUID]*models.ClientDocument{}},
		notifications: &fakeNotifications{c: c},
		identities:    &fakeIdentities{c: c, byEmail: map[string]*models.AuthIdentity{}},
	}

	logger := zap.NewNop()
	resolver := session.NewResolver(env.profiles, nil, logger)
	f := facade.New(env.profiles, env.applications, env.messages, env.documents, env.notifications, logger)

	env.router = NewRouter(RouterConfig{
		Env:        "test",
		JWTSecret:  testSecret,
		Resolver:   resolver,
		Facade:     f,
		Identities: env.identities,
		Logger:     logger,
	})
	return env
}

// addProfile registers a profile with a given role and returns a bearer
// token for it.
func (env *testEnv) addProfile(t *testing.T, role string) (*models.Profile, string) {
	t.Helper()
	ref := uuid.New()
	p := &models.Profile{
		ID:              uuid.New(),
		AuthIdentityRef: ref,
		Role:            role,
		Email:           role + "@example.com",
	}
	env.profiles.byRef[ref] = p

	token, err := auth.GenerateToken(ref, p.Email, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return p, "Bearer " + token
}
