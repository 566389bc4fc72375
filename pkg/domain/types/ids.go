package types

import "github.com/google/uuid"

// ModuleID identifies a merchant's configured sales agent
type ModuleID string

// NewModuleID generates a new UUID v4 ModuleID
func NewModuleID() ModuleID {
	return ModuleID(uuid.New().String())
}

func (id ModuleID) String() string {
	return string(id)
}

// ConversationID identifies a conversation between a module and a customer
type ConversationID string

// NewConversationID generates a new UUID v4 ConversationID
func NewConversationID() ConversationID {
	return ConversationID(uuid.New().String())
}

func (id ConversationID) String() string {
	return string(id)
}

// MessageID identifies a single message within a conversation
type MessageID string

// NewMessageID generates a new UUID v4 MessageID
func NewMessageID() MessageID {
	return MessageID(uuid.New().String())
}

func (id MessageID) String() string {
	return string(id)
}

// CustomerID is the external (channel-side) identity of a customer,
// e.g. a Messenger PSID. It is never generated locally.
type CustomerID string

func (id CustomerID) String() string {
	return string(id)
}

// MediaID identifies a media catalog item
type MediaID string

func (id MediaID) String() string {
	return string(id)
}
