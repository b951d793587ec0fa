package message

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalid is returned when a required field is blank.
var ErrInvalid = errors.New("name, email and message are required")

// Message is a contact form submission. Records are never updated.
type Message struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Message   string    `json:"message" bson:"message"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// New validates the submitted fields and stamps a fresh record. Values are
// stored as submitted.
func New(name, email, phone, body string, now time.Time) (Message, error) {
	msg := Message{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Phone:     phone,
		Message:   body,
		CreatedAt: now.UTC(),
	}
	if err := msg.Validate(); err != nil {
		return Message{}, err
	}
	return msg, nil
}

// Validate reports ErrInvalid when name, email or message is blank.
func (m Message) Validate() error {
	if strings.TrimSpace(m.Name) == "" || strings.TrimSpace(m.Email) == "" || strings.TrimSpace(m.Message) == "" {
		return ErrInvalid
	}
	return nil
}
