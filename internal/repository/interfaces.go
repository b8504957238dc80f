package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/veridyen/consultdesk/internal/models"
)

// Every method takes a context.Context: all of these hit the network, and
// the facade layer attaches a deadline to each call. A cancelled request
// cancels its queries.

// NewApplication carries the full field set for an application insert.
// The facade fills the fixed platform defaults; the store never invents
// values on its own.
type NewApplication struct {
	ClientID         uuid.UUID
	ConsultantID     uuid.UUID
	ServiceType      string
	ServiceCountryID uuid.UUID
	TotalAmount      string
	Currency         string
	Status           string
	SourceType       string
	PriorityLevel    string
}

// ProfileRepository handles application-level user records.
type ProfileRepository interface {
	// GetByIdentityRef returns the profile owned by an auth identity.
	// Returns nil, nil if none exists yet.
	GetByIdentityRef(ctx context.Context, ref uuid.UUID) (*models.Profile, error)

	// GetByID returns a profile by primary key. Returns nil, nil if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)

	// GetConsultantByEmail resolves a consultant's email to their profile.
	// Returns nil, nil when no consultant has that email.
	GetConsultantByEmail(ctx context.Context, email string) (*models.Profile, error)

	// Provision creates the default client profile for an identity on
	// first sight. Idempotent: concurrent calls for the same ref yield the
	// same row.
	Provision(ctx context.Context, ref uuid.UUID, email, firstName, language string) (*models.Profile, error)

	// CountryConsultant returns the single active consultant assigned to a
	// country, or nil, nil when the country has none.
	CountryConsultant(ctx context.Context, countryID uuid.UUID) (*models.Profile, error)

	// ConsultantClients is the elevated roster join: client profiles in a
	// country that have an application assigned to the consultant. The
	// caller's own row permissions could not see the joined rows, so this
	// method is reachable only through the facade, which verifies the
	// caller first.
	ConsultantClients(ctx context.Context, consultantID, countryID uuid.UUID, search string, limit, offset int) ([]models.Profile, error)
}

// ApplicationRepository handles service engagements.
type ApplicationRepository interface {
	// Create inserts an application and returns the stored row. Insert and
	// read-back run in one transaction.
	Create(ctx context.Context, app NewApplication) (*models.Application, error)

	// AssignConsultant sets the consultant on an existing application and
	// returns the updated row, in one transaction. Returns nil, nil when
	// the application does not exist.
	AssignConsultant(ctx context.Context, applicationID, consultantID uuid.UUID) (*models.Application, error)

	// ListByClient returns a client's applications, newest first.
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.Application, error)
}

// MessageRepository handles messages between two profiles.
type MessageRepository interface {
	// Create persists a message and returns it with ID and CreatedAt set.
	Create(ctx context.Context, senderID, recipientID uuid.UUID, body, messageType, originalLanguage string) (*models.Message, error)

	// ListForParticipant returns messages where the participant is sender
	// or recipient, newest first. A non-nil pair id narrows the result to
	// the two-party conversation: {sender, recipient} = {participant, pair}
	// in either order, and nothing else.
	ListForParticipant(ctx context.Context, participantID uuid.UUID, pairID *uuid.UUID) ([]models.Message, error)
}

// DocumentRepository handles client document review state.
type DocumentRepository interface {
	// ListByClient returns a client's documents, newest first.
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.ClientDocument, error)

	// UpdateStatus sets the review status (and optional consultant notes)
	// and returns the updated row. Returns nil, nil when the document does
	// not exist.
	UpdateStatus(ctx context.Context, documentID uuid.UUID, status string, notes *string) (*models.ClientDocument, error)
}

// NotificationRepository is read-only in this layer.
type NotificationRepository interface {
	// ListByClient returns a client's notifications of one type, newest
	// first. Returns empty slice (not nil) so JSON serializes to [].
	ListByClient(ctx context.Context, clientID uuid.UUID, notificationType string) ([]models.ClientNotification, error)
}

// IdentityRepository handles credential records.
type IdentityRepository interface {
	// Create inserts a new identity. Fails on duplicate email.
	Create(ctx context.Context, email, passwordHash string) (*models.AuthIdentity, error)

	// GetByEmail returns an identity by email. Returns nil, nil if absent.
	GetByEmail(ctx context.Context, email string) (*models.AuthIdentity, error)
}
