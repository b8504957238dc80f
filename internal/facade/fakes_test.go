package facade

import (
	"context"

	"github.com/google/uuid"
	"github.com/veridyen/consultdesk/internal/models"
	"github.com/veridyen/consultdesk/internal/repository"
)

// In-memory repository fakes. Each counts queries so tests can assert
// that validation failures never reach the store.

type fakeProfiles struct {
	consultants map[string]*models.Profile // by email
	countryCons map[uuid.UUID]*models.Profile
	roster      []models.Profile
	queries     int

	lastLimit  int
	lastOffset int
	lastSearch string
}

func (f *fakeProfiles) GetByIdentityRef(context.Context, uuid.UUID) (*models.Profile, error) {
	f.queries++
	return nil, nil
}

func (f *fakeProfiles) GetByID(context.Context, uuid.UUID) (*models.Profile, error) {
	f.queries++
	return nil, nil
}

func (f *fakeProfiles) GetConsultantByEmail(_ context.Context, email string) (*models.Profile, error) {
	f.queries++
	return f.consultants[email], nil
}

func (f *fakeProfiles) Provision(context.Context, uuid.UUID, string, string, string) (*models.Profile, error) {
	f.queries++
	return nil, nil
}

func (f *fakeProfiles) CountryConsultant(_ context.Context, countryID uuid.UUID) (*models.Profile, error) {
	f.queries++
	return f.countryCons[countryID], nil
}

func (f *fakeProfiles) ConsultantClients(_ context.Context, _, _ uuid.UUID, search string, limit, offset int) ([]models.Profile, error) {
	f.queries++
	f.lastSearch = search
	f.lastLimit = limit
	f.lastOffset = offset
	return f.roster, nil
}

type fakeApplications struct {
	created  []repository.NewApplication
	existing map[uuid.UUID]*models.Application
	byClient []models.Application
	queries  int
}

func (f *fakeApplications) Create(_ context.Context, app repository.NewApplication) (*models.Application, error) {
	f.queries++
	f.created = append(f.created, app)
	cid := app.ConsultantID
	return &models.Application{
		ID:               uuid.New(),
		ClientID:         app.ClientID,
		ConsultantID:     &cid,
		ServiceType:      app.ServiceType,
		ServiceCountryID: app.ServiceCountryID,
		TotalAmount:      app.TotalAmount,
		Currency:         app.Currency,
		Status:           app.Status,
		SourceType:       app.SourceType,
		PriorityLevel:    app.PriorityLevel,
	}, nil
}

func (f *fakeApplications) AssignConsultant(_ context.Context, applicationID, consultantID uuid.UUID) (*models.Application, error) {
	f.queries++
	app, ok := f.existing[applicationID]
	if !ok {
		return nil, nil
	}
	app.ConsultantID = &consultantID
	return app, nil
}

func (f *fakeApplications) ListByClient(context.Context, uuid.UUID) ([]models.Application, error) {
	f.queries++
	return f.byClient, nil
}

// fakeMessages filters its rows with the real visibility predicate so the
// pair-scoping property is observable through the facade.
type fakeMessages struct {
	rows    []models.Message
	sent    []models.Message
	queries int
}

func (f *fakeMessages) Create(_ context.Context, senderID, recipientID uuid.UUID, body, messageType, originalLanguage string) (*models.Message, error) {
	f.queries++
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
	f.queries++
	out := make([]models.Message, 0)
	for _, m := range f.rows {
		if pairID != nil {
			a, b := participantID, *pairID
			if (m.SenderID == a && m.RecipientID == b) || (m.SenderID == b && m.RecipientID == a) {
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
	byClient map[uuid.UUID][]models.ClientDocument
	existing map[uuid.UUID]*models.ClientDocument
	queries  int
}

func (f *fakeDocuments) ListByClient(_ context.Context, clientID uuid.UUID) ([]models.ClientDocument, error) {
	f.queries++
	docs := f.byClient[clientID]
	if docs == nil {
		docs = make([]models.ClientDocument, 0)
	}
	return docs, nil
}

func (f *fakeDocuments) UpdateStatus(_ context.Context, documentID uuid.UUID, status string, notes *string) (*models.ClientDocument, error) {
	f.queries++
	doc, ok := f.existing[documentID]
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
	rows    []models.ClientNotification
	queries int
}

func (f *fakeNotifications) ListByClient(_ context.Context, clientID uuid.UUID, notificationType string) ([]models.ClientNotification, error) {
	f.queries++
	out := make([]models.ClientNotification, 0)
	for _, n := range f.rows {
		if n.ClientID == clientID && n.NotificationType == notificationType {
			out = append(out, n)
		}
	}
	return out, nil
}
