// Package domain contains core concepts of the messenger.
// This file defines the Message variants and their edit/delete rules.
package domain

import (
	"fmt"
	"messenger/errors"
	"time"

	"github.com/google/uuid"
)

type MessageKind string

const (
	KindText  MessageKind = "text"
	KindImage MessageKind = "image"
)

// MessageHeader holds the fields shared by every message variant.
// IsDeleted only ever goes from false to true.
type MessageHeader struct {
	ID        uuid.UUID  `json:"id"`
	SentAt    time.Time  `json:"sent_at"`
	EditedAt  *time.Time `json:"edited_at,omitempty"`
	IsDeleted bool       `json:"is_deleted"`
}

// Delete soft-deletes the message. Calling it again changes nothing.
func (h *MessageHeader) Delete() {
	h.IsDeleted = true
}

func (h *MessageHeader) markEdited(at time.Time) {
	h.EditedAt = &at
}

// Message is a closed union: *TextMessage or *ImageMessage.
type Message interface {
	Header() *MessageHeader
	Kind() MessageKind
	Delete()
	sealedMessage()
}

type TextMessage struct {
	MessageHeader
	Text string `json:"text"`
}

func NewTextMessage(id uuid.UUID, sentAt time.Time, text string) *TextMessage {
	return &TextMessage{
		MessageHeader: MessageHeader{ID: id, SentAt: sentAt},
		Text:          text,
	}
}

func (m *TextMessage) Header() *MessageHeader { return &m.MessageHeader }
func (m *TextMessage) Kind() MessageKind      { return KindText }
func (m *TextMessage) sealedMessage()         {}

// Edit stamps EditedAt and replaces the whole text when one is given.
func (m *TextMessage) Edit(at time.Time, text *string) {
	m.markEdited(at)
	if text != nil {
		m.Text = *text
	}
}

// ImageMessage points at an uploaded MediaFile. ImageID never changes.
type ImageMessage struct {
	MessageHeader
	ImageID uuid.UUID `json:"image_id"`
	Caption string    `json:"caption"`
}

func NewImageMessage(id uuid.UUID, sentAt time.Time, imageID uuid.UUID, caption string) *ImageMessage {
	return &ImageMessage{
		MessageHeader: MessageHeader{ID: id, SentAt: sentAt},
		ImageID:       imageID,
		Caption:       caption,
	}
}

func (m *ImageMessage) Header() *MessageHeader { return &m.MessageHeader }
func (m *ImageMessage) Kind() MessageKind      { return KindImage }
func (m *ImageMessage) sealedMessage()         {}

// Edit stamps EditedAt and replaces the caption when one is given.
func (m *ImageMessage) Edit(at time.Time, caption *string) {
	m.markEdited(at)
	if caption != nil {
		m.Caption = *caption
	}
}

// EditMessage routes an edit to the variant's own payload:
// the text of a TextMessage, the caption of an ImageMessage.
func EditMessage(m Message, at time.Time, newText *string) error {
	switch msg := m.(type) {
	case *TextMessage:
		msg.Edit(at, newText)
	case *ImageMessage:
		msg.Edit(at, newText)
	default:
		return fmt.Errorf("%w: message %T", errors.ErrUnknownKind, m)
	}
	return nil
}
