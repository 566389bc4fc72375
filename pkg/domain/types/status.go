package types

import "fmt"

// ConversationStatus represents the lifecycle state of a conversation
type ConversationStatus string

const (
	ConversationStatusActive ConversationStatus = "active"
	ConversationStatusClosed ConversationStatus = "closed"
)

// IsValid checks if the conversation status is valid
func (s ConversationStatus) IsValid() bool {
	switch s {
	case ConversationStatusActive, ConversationStatusClosed:
		return true
	default:
		return false
	}
}

// Normalize returns the status, treating empty as active for records
// persisted before the status field existed.
func (s ConversationStatus) Normalize() ConversationStatus {
	if s == "" {
		return ConversationStatusActive
	}
	return s
}

func (s ConversationStatus) String() string {
	return string(s)
}

// Role represents the author of a message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// IsValid checks if the role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAssistant:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}

// ParseRole parses a string into a Role
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", fmt.Errorf("invalid role: %s", s)
	}
	return r, nil
}

// MediaKind represents the kind of a media catalog item
type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindVideo MediaKind = "video"
)

// IsValid checks if the media kind is valid
func (k MediaKind) IsValid() bool {
	switch k {
	case MediaKindImage, MediaKindVideo:
		return true
	default:
		return false
	}
}

func (k MediaKind) String() string {
	return string(k)
}
