package model

import (
	"time"

	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/types"
)

// ReuseWindow is how long after its last message a conversation keeps
// accepting new messages before a fresh one is started.
const ReuseWindow = 24 * time.Hour

// Conversation is one thread between a module and a customer. Messages
// are embedded; a conversation is always loaded and saved whole.
type Conversation struct {
	ID           types.ConversationID
	ModuleID     types.ModuleID
	CustomerID   types.CustomerID
	CustomerName string
	Status       types.ConversationStatus
	Messages     []Message
	Personality  *CustomerPersonality

	StartedAt     time.Time
	LastMessageAt time.Time
	UpdatedAt     time.Time
}

// NewConversation starts an active conversation for a customer
func NewConversation(moduleID types.ModuleID, customerID types.CustomerID, customerName string) *Conversation {
	now := time.Now()
	return &Conversation{
		ID:            types.NewConversationID(),
		ModuleID:      moduleID,
		CustomerID:    customerID,
		CustomerName:  customerName,
		Status:        types.ConversationStatusActive,
		StartedAt:     now,
		LastMessageAt: now,
		UpdatedAt:     now,
	}
}

// IsReusable reports whether a new inbound message belongs to this
// conversation: it must still be active and its last message must be
// younger than the reuse window. A message exactly at the window
// boundary starts a new conversation. Closed conversations are never
// reused.
func (c *Conversation) IsReusable(now time.Time) bool {
	if c.Status.Normalize() != types.ConversationStatusActive {
		return false
	}
	return now.Sub(c.LastMessageAt) < ReuseWindow
}

// Append adds a message and advances the activity timestamps
func (c *Conversation) Append(m Message) {
	c.Messages = append(c.Messages, m)
	c.LastMessageAt = m.CreatedAt
	c.UpdatedAt = m.CreatedAt
}

// UserMessages returns the customer-authored subset of the history
func (c *Conversation) UserMessages() []Message {
	var out []Message
	for _, m := range c.Messages {
		if m.Role == types.RoleUser {
			out = append(out, m)
		}
	}
	return out
}

// Clone returns a deep copy. Repositories hand out clones so no two
// callers ever share a live instance.
func (c *Conversation) Clone() *Conversation {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Personality = c.Personality.Clone()
	if c.Messages != nil {
		clone.Messages = make([]Message, len(c.Messages))
		copy(clone.Messages, c.Messages)
		for i, m := range c.Messages {
			if m.Attachments != nil {
				clone.Messages[i].Attachments = make([]Attachment, len(m.Attachments))
				copy(clone.Messages[i].Attachments, m.Attachments)
			}
		}
	}
	return &clone
}

// Message is one utterance in a conversation. Messages are immutable
// once appended except for the Read flag.
type Message struct {
	ID             types.MessageID
	ConversationID types.ConversationID
	Role           types.Role
	Content        string
	Attachments    []Attachment
	CreatedAt      time.Time

	// Read marks customer messages the merchant has seen. Assistant
	// messages are born read.
	Read bool
}

// NewMessage creates a message stamped with the current time
func NewMessage(conversationID types.ConversationID, role types.Role, content string, attachments ...Attachment) Message {
	return Message{
		ID:             types.NewMessageID(),
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		Attachments:    attachments,
		CreatedAt:      time.Now(),
		Read:           role == types.RoleAssistant,
	}
}

// Attachment is a media reference carried by a message
type Attachment struct {
	Kind types.MediaKind
	URL  string
}
