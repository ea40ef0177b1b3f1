package domain

import "time"

// LetterType distinguishes text letters from audio messages. Audio letters
// store an object key in Content instead of the message body.
type LetterType string

const (
	LetterTypeText  LetterType = "TEXT"
	LetterTypeAudio LetterType = "AUDIO"
)

// Letter is a message between two members of the same family. OpenAt supports
// time-capsule letters that cannot be read before their open date.
type Letter struct {
	ID              string
	SenderID        string
	ReceiverID      string
	Type            LetterType
	Content         string
	BackgroundColor string
	OpenAt          time.Time
	IsRead          bool
	CreatedAt       time.Time
}

// Openable reports whether the letter may be read at the given time.
func (l *Letter) Openable(now time.Time) bool {
	return !l.OpenAt.After(now)
}
