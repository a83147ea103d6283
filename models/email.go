package models

import (
	"net/mail"
	"strings"
	"time"

	"github.com/rosterhq/team-registry-backend/errs"
)

// Email represents an outbound message; SentAt is stamped once it left
type Email struct {
	Base
	Type       string     `json:"type" db:"type" gorm:"type:text;not null"`
	Subject    string     `json:"subject" db:"subject" gorm:"type:text;not null"`
	Body       *string    `json:"body,omitempty" db:"body" gorm:"type:text"`
	Sender     *string    `json:"sender,omitempty" db:"sender" gorm:"type:text"`
	To         *string    `json:"to,omitempty" db:"to" gorm:"type:text"`
	Cc         *string    `json:"cc,omitempty" db:"cc" gorm:"type:text"`
	Bcc        *string    `json:"bcc,omitempty" db:"bcc" gorm:"type:text"`
	TrackingID *string    `json:"tracking_id,omitempty" db:"tracking_id" gorm:"type:text"`
	SentAt     *time.Time `json:"sent_at,omitempty" db:"sent_at"`
}

func (Email) EntityName() string {
	return "Email"
}

type EmailCreate struct {
	Type       string  `json:"type"`
	Subject    string  `json:"subject"`
	Body       *string `json:"body,omitempty"`
	Sender     *string `json:"sender,omitempty"`
	To         *string `json:"to,omitempty"`
	Cc         *string `json:"cc,omitempty"`
	Bcc        *string `json:"bcc,omitempty"`
	TrackingID *string `json:"tracking_id,omitempty"`
}

// Validate normalizes and checks every address list; destinations accept
// comma or semicolon separated addresses.
func (c *EmailCreate) Validate() error {
	if c.Sender != nil {
		normalized, err := normalizeAddresses(*c.Sender)
		if err != nil {
			return errs.NewBadRequest("invalid sender address")
		}
		c.Sender = &normalized
	}
	for _, dest := range []struct {
		name  string
		field **string
	}{
		{"to", &c.To},
		{"cc", &c.Cc},
		{"bcc", &c.Bcc},
	} {
		if *dest.field == nil {
			continue
		}
		normalized, err := normalizeAddresses(**dest.field)
		if err != nil {
			return errs.NewBadRequest("invalid " + dest.name + " address")
		}
		*dest.field = &normalized
	}
	return nil
}

func normalizeAddresses(raw string) (string, error) {
	cleaned := strings.ReplaceAll(strings.ReplaceAll(raw, " ", ""), ";", ",")
	addresses := strings.Split(cleaned, ",")
	for _, address := range addresses {
		if _, err := mail.ParseAddress(address); err != nil {
			return "", err
		}
	}
	return strings.ToLower(strings.Join(addresses, ",")), nil
}

type EmailUpdate struct {
	Type       *string    `json:"type,omitempty"`
	Subject    *string    `json:"subject,omitempty"`
	Body       *string    `json:"body,omitempty"`
	TrackingID *string    `json:"tracking_id,omitempty"`
	SentAt     *time.Time `json:"sent_at,omitempty"`
}

type EmailRead struct {
	ID         string     `json:"id"`
	Type       string     `json:"type"`
	Subject    string     `json:"subject"`
	Body       *string    `json:"body,omitempty"`
	Sender     *string    `json:"sender,omitempty"`
	To         *string    `json:"to,omitempty"`
	SentAt     *time.Time `json:"sent_at"`
	TrackingID *string    `json:"tracking_id,omitempty"`
}

func NewEmailRead(email Email) EmailRead {
	return EmailRead{
		ID:         email.ID,
		Type:       email.Type,
		Subject:    email.Subject,
		Body:       email.Body,
		Sender:     email.Sender,
		To:         email.To,
		SentAt:     email.SentAt,
		TrackingID: email.TrackingID,
	}
}
