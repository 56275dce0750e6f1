package rest

import (
	"time"

	"github.com/triptribe/backend/internal/domain"
)

type userResponse struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	DisplayName string  `json:"displayName"`
	PhotoURL    *string `json:"photoUrl,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	CreatedAt   string  `json:"createdAt"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:          u.ID.String(),
		Email:       u.Email,
		DisplayName: u.DisplayName,
		PhotoURL:    u.PhotoURL,
		PhoneNumber: u.PhoneNumber,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
	}
}

type participantResponse struct {
	UserID   string `json:"userId"`
	Role     string `json:"role"`
	JoinedAt string `json:"joinedAt"`
}

type invitationResponse struct {
	ID        string  `json:"id"`
	TripID    string  `json:"tripId"`
	Email     string  `json:"email"`
	Status    string  `json:"status"`
	Message   *string `json:"message,omitempty"`
	CreatedAt string  `json:"createdAt"`
}

func toInvitationResponse(inv *domain.Invitation) invitationResponse {
	return invitationResponse{
		ID:        inv.ID.String(),
		TripID:    inv.TripID.String(),
		Email:     inv.Email,
		Status:    inv.Status.String(),
		Message:   inv.Message,
		CreatedAt: inv.CreatedAt.Format(time.RFC3339),
	}
}

type tripResponse struct {
	ID           string                `json:"id"`
	CreatorID    string                `json:"creatorId"`
	Name         string                `json:"name"`
	Destination  string                `json:"destination"`
	StartDate    string                `json:"startDate"`
	EndDate      string                `json:"endDate"`
	Description  *string               `json:"description,omitempty"`
	Status       string                `json:"status"`
	Participants []participantResponse `json:"participants"`
	Invitations  []invitationResponse  `json:"invitations"`
	CreatedAt    string                `json:"createdAt"`
	UpdatedAt    string                `json:"updatedAt"`
}

func toTripResponse(t *domain.Trip) tripResponse {
	participants := make([]participantResponse, 0, len(t.Participants))
	for _, p := range t.Participants {
		participants = append(participants, participantResponse{
			UserID:   p.UserID.String(),
			Role:     p.Role.String(),
			JoinedAt: p.JoinedAt.Format(time.RFC3339),
		})
	}

	invitations := make([]invitationResponse, 0, len(t.Invitations))
	for i := range t.Invitations {
		invitations = append(invitations, toInvitationResponse(&t.Invitations[i]))
	}

	return tripResponse{
		ID:           t.ID.String(),
		CreatorID:    t.CreatorID.String(),
		Name:         t.Name,
		Destination:  t.Destination,
		StartDate:    t.StartDate.Format(time.RFC3339),
		EndDate:      t.EndDate.Format(time.RFC3339),
		Description:  t.Description,
		Status:       t.Status(time.Now()).String(),
		Participants: participants,
		Invitations:  invitations,
		CreatedAt:    t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    t.UpdatedAt.Format(time.RFC3339),
	}
}

func toTripResponses(trips []domain.Trip) []tripResponse {
	out := make([]tripResponse, 0, len(trips))
	for i := range trips {
		out = append(out, toTripResponse(&trips[i]))
	}
	return out
}

type activityResponse struct {
	ID              string  `json:"id"`
	TripID          string  `json:"tripId"`
	CreatorID       string  `json:"creatorId"`
	Name            string  `json:"name"`
	Location        string  `json:"location"`
	StartsAt        string  `json:"startsAt"`
	DurationMinutes int     `json:"durationMinutes"`
	Category        string  `json:"category"`
	PhotoURL        *string `json:"photoUrl,omitempty"`
	LinkURL         *string `json:"linkUrl,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

func toActivityResponse(a *domain.Activity) activityResponse {
	return activityResponse{
		ID:              a.ID.String(),
		TripID:          a.TripID.String(),
		CreatorID:       a.CreatorID.String(),
		Name:            a.Name,
		Location:        a.Location,
		StartsAt:        a.StartsAt.Format(time.RFC3339),
		DurationMinutes: int(a.Duration.Minutes()),
		Category:        a.Category.String(),
		PhotoURL:        a.PhotoURL,
		LinkURL:         a.LinkURL,
		CreatedAt:       a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       a.UpdatedAt.Format(time.RFC3339),
	}
}
