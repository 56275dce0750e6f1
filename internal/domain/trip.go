package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is the top-level aggregate: a planned group journey with a date
// range, an owner, participants, and invitations. Participants and
// invitations are always loaded together with the trip.
type Trip struct {
	ID           uuid.UUID
	CreatorID    uuid.UUID
	Name         string
	Destination  string
	StartDate    time.Time
	EndDate      time.Time
	Description  *string
	Participants []Participant
	Invitations  []Invitation
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Participant binds a user to a trip with a role. One entry per user per
// trip, ordered by join time. Participant rows double as the per-user trip
// index: "trips for user" is resolved through them, never by scanning trips.
type Participant struct {
	TripID   uuid.UUID
	UserID   uuid.UUID
	Role     ParticipantRole
	JoinedAt time.Time
}

// ParticipantRole is the role of a participant within a trip.
type ParticipantRole string

const (
	RoleCreator ParticipantRole = "creator"
	RoleAdmin   ParticipantRole = "admin"
	RoleMember  ParticipantRole = "member"
)

func (r ParticipantRole) String() string { return string(r) }

func (r ParticipantRole) IsValid() bool {
	switch r {
	case RoleCreator, RoleAdmin, RoleMember:
		return true
	}
	return false
}

// Invitation is an offer for an email address to join a trip. At most one
// invitation exists per (trip, email); re-inviting an email replaces the
// previous invitation with a fresh pending one.
type Invitation struct {
	ID        uuid.UUID
	TripID    uuid.UUID
	Email     string // stored lowercased
	Status    InvitationStatus
	Message   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// InvitationStatus is the lifecycle state of an invitation.
// InvitationExpired is a valid value but no operation currently produces
// it; it is reserved for a future expiry sweep.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
	InvitationExpired  InvitationStatus = "expired"
)

func (s InvitationStatus) String() string { return string(s) }

func (s InvitationStatus) IsValid() bool {
	switch s {
	case InvitationPending, InvitationAccepted, InvitationDeclined, InvitationExpired:
		return true
	}
	return false
}

// HasParticipant reports whether the user is already a participant.
func (t *Trip) HasParticipant(userID uuid.UUID) bool {
	for _, p := range t.Participants {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

// FindInvitation returns the invitation with the given id, or nil.
func (t *Trip) FindInvitation(id uuid.UUID) *Invitation {
	for i := range t.Invitations {
		if t.Invitations[i].ID == id {
			return &t.Invitations[i]
		}
	}
	return nil
}

// PendingInvitationFor returns the pending invitation for the given email
// (case-insensitive), or nil.
func (t *Trip) PendingInvitationFor(email string) *Invitation {
	email = NormalizeEmail(email)
	for i := range t.Invitations {
		if t.Invitations[i].Email == email && t.Invitations[i].Status == InvitationPending {
			return &t.Invitations[i]
		}
	}
	return nil
}
