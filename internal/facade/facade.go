// Package facade is the role-scoped data-access layer between the HTTP
// handlers and the stores. Every operation validates its identifiers
// before issuing a query, attaches a bounded deadline, and enforces the
// caller checks that gate the elevated cross-row joins.
package facade

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/veridyen/consultdesk/internal/models"
	"github.com/veridyen/consultdesk/internal/repository"
	"go.uber.org/zap"
)

// OpTimeout bounds every facade operation. A hung backend call fails the
// request instead of hanging the caller.
const OpTimeout = 10 * time.Second

// Fixed defaults for applications created through the platform assignment
// flow. These are constants of the product, never computed from input.
const (
	DefaultServiceType   = "company_formation"
	DefaultTotalAmount   = "2500.00"
	DefaultCurrency      = "USD"
	DefaultSourceType    = models.SourcePlatform
	DefaultPriorityLevel = "normal"

	// DefaultMessageType is used when the sender does not classify the
	// message.
	DefaultMessageType = "general"

	// DefaultMessageLanguage is the platform's primary language; the
	// translation pipeline keys off it.
	DefaultMessageLanguage = "tr"
)

// Roster pagination bounds.
const (
	DefaultClientLimit = 50
	MaxClientLimit     = 100
)

// Caller identifies the authenticated profile invoking an elevated
// operation. It is built by the middleware from a resolved profile, never
// from request input.
type Caller struct {
	ProfileID uuid.UUID
	Role      string
}

// IsAdmin reports whether the caller may see any profile's rows.
func (c Caller) IsAdmin() bool { return c.Role == models.RoleAdmin }

type Facade struct {
	profiles      repository.ProfileRepository
	applications  repository.ApplicationRepository
	messages      repository.MessageRepository
	documents     repository.DocumentRepository
	notifications repository.NotificationRepository
	logger        *zap.Logger
}

func New(
	profiles repository.ProfileRepository,
	applications repository.ApplicationRepository,
	messages repository.MessageRepository,
	documents repository.DocumentRepository,
	notifications repository.NotificationRepository,
	logger *zap.Logger,
) *Facade {
	return &Facade{
		profiles:      profiles,
		applications:  applications,
		messages:      messages,
		documents:     documents,
		notifications: notifications,
		logger:        logger,
	}
}

func opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, OpTimeout)
}

// ConsultantClientsParams selects a consultant's roster. Exactly one of
// ConsultantID / ConsultantEmail must identify the consultant.
type ConsultantClientsParams struct {
	ConsultantID    uuid.UUID
	ConsultantEmail string
	CountryID       uuid.UUID
	Search          string
	Limit           int
	Offset          int
}

// ConsultantClients returns the client profiles scoped to one consultant
// and one country. This is the elevated roster join: it runs only after
// the caller is verified to be that consultant or an admin.
func (f *Facade) ConsultantClients(ctx context.Context, caller Caller, p ConsultantClientsParams) ([]models.Profile, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	if p.CountryID == uuid.Nil {
		return nil, fmt.Errorf("%w: countryId", ErrValidation)
	}

	consultantID := p.ConsultantID
	if consultantID == uuid.Nil {
		if p.ConsultantEmail == "" {
			return nil, fmt.Errorf("%w: consultantId or consultantEmail", ErrValidation)
		}
		consultant, err := f.profiles.GetConsultantByEmail(ctx, p.ConsultantEmail)
		if err != nil {
			return nil, err
		}
		if consultant == nil {
			return nil, fmt.Errorf("%w: consultant %s", ErrNotFound, p.ConsultantEmail)
		}
		consultantID = consultant.ID
	}

	if !caller.IsAdmin() && caller.ProfileID != consultantID {
		f.logger.Warn("roster access denied",
			zap.String("caller", caller.ProfileID.String()),
			zap.String("consultant", consultantID.String()))
		return nil, fmt.Errorf("%w: roster of another consultant", ErrForbidden)
	}

	limit := p.Limit
	if limit <= 0 {
		limit = DefaultClientLimit
	}
	if limit > MaxClientLimit {
		limit = MaxClientLimit
	}
	offset := p.Offset
	if offset < 0 {
		offset = 0
	}

	return f.profiles.ConsultantClients(ctx, consultantID, p.CountryID, p.Search, limit, offset)
}

// CountryConsultant returns the single active consultant assigned to a
// country, or nil when the country has none.
func (f *Facade) CountryConsultant(ctx context.Context, countryID uuid.UUID) (*models.Profile, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	if countryID == uuid.Nil {
		return nil, fmt.Errorf("%w: countryId", ErrValidation)
	}
	return f.profiles.CountryConsultant(ctx, countryID)
}

// AssignConsultant sets the consultant on an existing application.
func (f *Facade) AssignConsultant(ctx context.Context, applicationID, consultantID uuid.UUID) (*models.Application, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	if applicationID == uuid.Nil || consultantID == uuid.Nil {
		return nil, ErrValidation
	}

	app, err := f.applications.AssignConsultant(ctx, applicationID, consultantID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, fmt.Errorf("%w: application %s", ErrNotFound, applicationID)
	}
	return app, nil
}

// AssignConsultantToNewApplication creates a platform application already
// assigned to a consultant. Amount, currency, status and the rest of the
// defaults are fixed regardless of input.
func (f *Facade) AssignConsultantToNewApplication(ctx context.Context, consultantID, clientID, countryID uuid.UUID) (*models.Application, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	if consultantID == uuid.Nil || clientID == uuid.Nil || countryID == uuid.Nil {
		return nil, ErrValidation
	}

	return f.applications.Create(ctx, repository.NewApplication{
		ClientID:         clientID,
		ConsultantID:     consultantID,
		ServiceType:      DefaultServiceType,
		ServiceCountryID: countryID,
		TotalAmount:      DefaultTotalAmount,
		Currency:         DefaultCurrency,
		Status:           models.ApplicationPending,
		SourceType:       DefaultSourceType,
		PriorityLevel:    DefaultPriorityLevel,
	})
}

// Messages returns the messages visible to a participant, newest first,
// optionally narrowed to a two-party conversation. Elevated: runs only
// after the caller is verified to be a participant or an admin.
//
// A missing participant id is a validation error, uniformly with every
// other operation here.
func (f *Facade) Messages(ctx context.Context, caller Caller, participantID uuid.UUID, pairID *uuid.UUID) ([]models.Message, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	if participantID == uuid.Nil {
		return nil, fmt.Errorf("%w: participantId", ErrValidation)
	}
	if pairID != nil && *pairID == uuid.Nil {
		return nil, fmt.Errorf("%w: pairId", ErrValidation)
	}

	if !caller.IsAdmin() && caller.ProfileID != participantID {
		// A caller who is only the other half of the pair still qualifies:
		// the pair predicate is symmetric.
		if pairID == nil || caller.ProfileID != *pairID {
			f.logger.Warn("message access denied",
				zap.String("caller", caller.ProfileID.String()),
				zap.String("participant", participantID.String()))
			return nil, fmt.Errorf("%w: messages of another profile", ErrForbidden)
		}
	}

	return f.messages.ListForParticipant(ctx, participantID, pairID)
}

// SendMessage persists a message between two profiles. Type defaults to
// "general"; new messages start in the platform language, unread.
func (f *Facade) SendMessage(ctx context.Context, senderID, recipientID uuid.UUID, text, messageType string) (*models.Message, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	if senderID == uuid.Nil || recipientID == uuid.Nil || text == "" {
		return nil, ErrValidation
	}
	if messageType == "" {
		messageType = DefaultMessageType
	}

	return f.messages.Create(ctx, senderID, recipientID, text, messageType, DefaultMessageLanguage)
}

// ClientDocuments returns a client's documents, newest first.
func (f *Facade) ClientDocuments(ctx context.Context, clientID uuid.UUID) ([]models.ClientDocument, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	if clientID == uuid.Nil {
		return nil, fmt.Errorf("%w: clientId", ErrValidation)
	}
	return f.documents.ListByClient(ctx, clientID)
}

// UpdateDocumentStatus moves a document to a new review state. The id and
// status are checked before any query goes out.
func (f *Facade) UpdateDocumentStatus(ctx context.Context, documentID uuid.UUID, status string, notes *string) (*models.ClientDocument, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	if documentID == uuid.Nil {
		return nil, fmt.Errorf("%w: documentId", ErrValidation)
	}
	if !models.ValidDocumentStatus(status) {
		return nil, fmt.Errorf("%w: status %q", ErrValidation, status)
	}

	doc, err := f.documents.UpdateStatus(ctx, documentID, status, notes)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: document %s", ErrNotFound, documentID)
	}
	return doc, nil
}

// ClientNotifications lists a client's notifications of one fixed type.
func (f *Facade) ClientNotifications(ctx context.Context, clientID uuid.UUID, notificationType string) ([]models.ClientNotification, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	if clientID == uuid.Nil || notificationType == "" {
		return nil, ErrValidation
	}
	return f.notifications.ListByClient(ctx, clientID, notificationType)
}

// ClientOverview bundles everything the accounting panel renders for one
// client: documents, service requests, and the client's message history.
type ClientOverview struct {
	Documents []models.ClientDocument `json:"documents"`
	Requests  []models.Application    `json:"requests"`
	Messages  []models.Message        `json:"messages"`
}

// AccountingClient assembles the overview. The three reads are
// independent; the first failure aborts the whole operation.
func (f *Facade) AccountingClient(ctx context.Context, clientID uuid.UUID) (*ClientOverview, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	if clientID == uuid.Nil {
		return nil, fmt.Errorf("%w: clientId", ErrValidation)
	}

	docs, err := f.documents.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	requests, err := f.applications.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	messages, err := f.messages.ListForParticipant(ctx, clientID, nil)
	if err != nil {
		return nil, err
	}

	return &ClientOverview{
		Documents: docs,
		Requests:  requests,
		Messages:  messages,
	}, nil
}
