package dto

import (
	"time"

	"github.com/spec-kit/family-photo-service/internal/domain"
)

// SendLetterRequest payload. Content holds the message body for text letters
// and is ignored for audio letters, whose recording is uploaded separately.
type SendLetterRequest struct {
	ReceiverID      string            `json:"receiverId" validate:"required"`
	Type            domain.LetterType `json:"type" validate:"required,oneof=TEXT AUDIO"`
	Content         string            `json:"content" validate:"required_if=Type TEXT"`
	BackgroundColor string            `json:"backgroundColor" validate:"omitempty,hexcolor"`
	OpenAt          *time.Time        `json:"openAt"`
}

// LetterResponse view. Content and AudioURL stay empty while a time-capsule
// letter is sealed.
type LetterResponse struct {
	ID              string            `json:"id"`
	SenderID        string            `json:"senderId"`
	ReceiverID      string            `json:"receiverId"`
	Type            domain.LetterType `json:"type"`
	Content         string            `json:"content,omitempty"`
	AudioURL        string            `json:"audioUrl,omitempty"`
	BackgroundColor string            `json:"backgroundColor,omitempty"`
	OpenAt          time.Time         `json:"openAt"`
	Openable        bool              `json:"openable"`
	IsRead          bool              `json:"isRead"`
	CreatedAt       time.Time         `json:"createdAt"`
}

// SendLetterResponse couples the stored letter with the recording upload URL
// for audio letters.
type SendLetterResponse struct {
	Letter    LetterResponse `json:"letter"`
	UploadURL string         `json:"uploadUrl,omitempty"`
}
