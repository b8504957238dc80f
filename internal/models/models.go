package models

import (
	"time"

	"github.com/google/uuid"
)

// Roles a profile can hold. The role is assigned at creation and never
// changes afterwards — there is no role-change flow in the product.
const (
	RoleAdmin         = "admin"
	RoleConsultant    = "consultant"
	RoleClient        = "client"
	RoleLegalReviewer = "legal_reviewer"
)

// Application lifecycle states.
const (
	ApplicationPending    = "pending"
	ApplicationPaid       = "paid"
	ApplicationProcessing = "processing"
	ApplicationCompleted  = "completed"
	ApplicationCancelled  = "cancelled"
)

// Application source types.
const (
	SourcePlatform = "platform"
	SourceLegacy   = "legacy"
	SourceReferral = "referral"
)

// Document review states.
const (
	DocumentPendingReview = "pending_review"
	DocumentApproved      = "approved"
	DocumentRejected      = "rejected"
	DocumentExpired       = "expired"
)

// Profile is the application-level user record, distinct from the auth
// identity it references. Every query that touches user data is scoped by
// profile id and role, so a client can never read another client's rows.
//
// AuthIdentityRef links to the identity row that owns the credentials.
// Provisioned lazily: the first authenticated request from an identity with
// no profile creates one with role "client".
type Profile struct {
	ID              uuid.UUID  `json:"id"`
	AuthIdentityRef uuid.UUID  `json:"auth_identity_ref"`
	Role            string     `json:"role"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	Email           string     `json:"email"`
	Language        string     `json:"language"`
	CountryID       *uuid.UUID `json:"country_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// FullName is what dashboards render next to a roster entry.
func (p *Profile) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// Application is one service engagement between a client and (optionally)
// an assigned consultant. ConsultantID is set exactly once, at assignment;
// there is no reassignment operation.
type Application struct {
	ID               uuid.UUID  `json:"id"`
	ClientID         uuid.UUID  `json:"client_id"`
	ConsultantID     *uuid.UUID `json:"consultant_id,omitempty"`
	ServiceType      string     `json:"service_type"`
	ServiceCountryID uuid.UUID  `json:"service_country_id"`
	TotalAmount      string     `json:"total_amount"`
	Currency         string     `json:"currency"`
	Status           string     `json:"status"`
	SourceType       string     `json:"source_type"`
	PriorityLevel    string     `json:"priority_level"`
	CreatedAt        time.Time  `json:"created_at"`
}

// Message is a single message between two profiles. Visibility for a
// (consultant, client) pair is exactly the set of rows where
// {sender, recipient} equals the pair in either order. Only IsRead is ever
// mutated after creation.
type Message struct {
	ID               uuid.UUID `json:"id"`
	SenderID         uuid.UUID `json:"sender_id"`
	RecipientID      uuid.UUID `json:"recipient_id"`
	Message          string    `json:"message"`
	MessageType      string    `json:"message_type"`
	OriginalLanguage string    `json:"original_language"`
	NeedsTranslation bool      `json:"needs_translation"`
	IsRead           bool      `json:"is_read"`
	CreatedAt        time.Time `json:"created_at"`
}

// ClientDocument is an uploaded document under review. Only the status and
// consultant notes change after creation, and only through the
// status-update operation.
type ClientDocument struct {
	ID              uuid.UUID `json:"id"`
	ClientID        uuid.UUID `json:"client_id"`
	DocumentName    string    `json:"document_name"`
	Status          string    `json:"status"`
	ConsultantNotes *string   `json:"consultant_notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ClientNotification is read-only in this layer; rows are produced by
// backend triggers and only ever listed here, filtered by client and type.
type ClientNotification struct {
	ID               uuid.UUID `json:"id"`
	ClientID         uuid.UUID `json:"client_id"`
	NotificationType string    `json:"notification_type"`
	Title            string    `json:"title"`
	Body             string    `json:"body"`
	IsRead           bool      `json:"is_read"`
	CreatedAt        time.Time `json:"created_at"`
}

// AuthIdentity is a credential record. It is never exposed through the API;
// it exists so the service can issue its own tokens instead of delegating
// to a hosted provider.
type AuthIdentity struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// ValidDocumentStatus reports whether s is one of the four review states.
func ValidDocumentStatus(s string) bool {
	switch s {
	case DocumentPendingReview, DocumentApproved, DocumentRejected, DocumentExpired:
		return true
	}
	return false
}

// ValidRole reports whether r is a known profile role.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleConsultant, RoleClient, RoleLegalReviewer:
		return true
	}
	return false
}
