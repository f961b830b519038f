package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"hopeplates/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationMatchSuggested NotificationType = "MATCH_SUGGESTED"
	NotificationMatchAccepted  NotificationType = "MATCH_ACCEPTED"
	NotificationMatchPickedUp  NotificationType = "MATCH_PICKED_UP"
	NotificationMatchDelivered NotificationType = "MATCH_DELIVERED"
)

// Notification represents a notification to be sent.
type Notification struct {
	Type        NotificationType `json:"type"`
	RecipientID string           `json:"recipientId"` // NGO ID
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	Data        map[string]any   `json:"data,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// Publisher pushes a payload to everyone subscribed to recipientID.
type Publisher interface {
	Publish(recipientID string, payload any)
}

// Notifier is the notification contract used by the donation and match services.
type Notifier interface {
	NotifyMatchSuggested(ctx context.Context, match *domain.Match, donor *domain.Donor) error
	NotifyMatchAccepted(ctx context.Context, match *domain.Match) error
	NotifyMatchPickedUp(ctx context.Context, match *domain.Match) error
	NotifyMatchDelivered(ctx context.Context, match *domain.Match) error
}

var _ Notifier = (*NotificationService)(nil)

// NotificationService logs match events and forwards them to a realtime
// publisher when one is configured.
type NotificationService struct {
	publisher Publisher
}

// NewNotificationService creates a new NotificationService. publisher may be nil.
func NewNotificationService(publisher Publisher) *NotificationService {
	return &NotificationService{publisher: publisher}
}

// NotifyMatchSuggested tells an NGO about a new donation near it.
func (s *NotificationService) NotifyMatchSuggested(ctx context.Context, match *domain.Match, donor *domain.Donor) error {
	return s.send(ctx, Notification{
		Type:        NotificationMatchSuggested,
		RecipientID: match.NGOID,
		Title:       "New Donation Nearby",
		Message:     fmt.Sprintf("%s of %s available %.2f km away", donor.Quantity, donor.FoodType, match.Distance),
		Data: map[string]any{
			"match_id":            match.ID,
			"donor_id":            donor.ID,
			"distance":            match.Distance,
			"compatibility_score": match.CompatibilityScore,
		},
		CreatedAt: time.Now(),
	})
}

// NotifyMatchAccepted confirms an acceptance to the NGO.
func (s *NotificationService) NotifyMatchAccepted(ctx context.Context, match *domain.Match) error {
	return s.send(ctx, Notification{
		Type:        NotificationMatchAccepted,
		RecipientID: match.NGOID,
		Title:       "Donation Accepted",
		Message:     "You accepted the donation. Please arrange pickup.",
		Data:        map[string]any{"match_id": match.ID, "donor_id": match.DonorID},
		CreatedAt:   time.Now(),
	})
}

// NotifyMatchPickedUp confirms a pickup to the NGO.
func (s *NotificationService) NotifyMatchPickedUp(ctx context.Context, match *domain.Match) error {
	return s.send(ctx, Notification{
		Type:        NotificationMatchPickedUp,
		RecipientID: match.NGOID,
		Title:       "Donation Picked Up",
		Message:     "The donation has been picked up.",
		Data:        map[string]any{"match_id": match.ID, "donor_id": match.DonorID},
		CreatedAt:   time.Now(),
	})
}

// NotifyMatchDelivered confirms a delivery to the NGO.
func (s *NotificationService) NotifyMatchDelivered(ctx context.Context, match *domain.Match) error {
	return s.send(ctx, Notification{
		Type:        NotificationMatchDelivered,
		RecipientID: match.NGOID,
		Title:       "Donation Delivered",
		Message:     fmt.Sprintf("Delivered to %s, %d people served", match.RecipientName, match.PeopleServed),
		Data: map[string]any{
			"match_id":          match.ID,
			"people_served":     match.PeopleServed,
			"delivered_on_time": match.OnTime(),
		},
		CreatedAt: time.Now(),
	})
}

func (s *NotificationService) send(ctx context.Context, notification Notification) error {
	log.Printf("[NOTIFICATION] Type=%s, Recipient=%s, Title=%s, Message=%s",
		notification.Type, notification.RecipientID, notification.Title, notification.Message)

	if s.publisher != nil {
		s.publisher.Publish(notification.RecipientID, notification)
	}

	return nil
}
