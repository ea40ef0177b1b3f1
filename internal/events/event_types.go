package events

import (
	"time"

	"github.com/spec-kit/family-photo-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLetterSent      EventType = "letter_sent"
	EventPhotoAdded      EventType = "photo_added"
	EventScheduleCreated EventType = "schedule_created"
	EventFamilyJoined    EventType = "family_joined"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	FamilyID  string      `json:"family_id,omitempty"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// LetterSentPayload payload.
type LetterSentPayload struct {
	LetterID   string            `json:"letter_id"`
	ReceiverID string            `json:"receiver_id"`
	LetterType domain.LetterType `json:"letter_type"`
	OpenAt     time.Time         `json:"open_at"`
}

// PhotoAddedPayload payload.
type PhotoAddedPayload struct {
	AlbumID string `json:"album_id"`
	Count   int    `json:"count"`
}

// ScheduleCreatedPayload payload.
type ScheduleCreatedPayload struct {
	ScheduleID string    `json:"schedule_id"`
	StartDate  time.Time `json:"start_date"`
	Content    string    `json:"content"`
}

// FamilyJoinedPayload payload.
type FamilyJoinedPayload struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
}
