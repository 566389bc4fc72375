package model

import "strings"

// ConversationMemory is a derived three-tier view over a conversation's
// message history. It is recomputed on demand and never persisted: given
// the same message list and personality snapshot it must always compile
// to the same result.
type ConversationMemory struct {
	// Immediate holds the last N messages verbatim
	Immediate []Message

	// Summary is a text digest of everything older than Immediate
	Summary string

	// LongTerm holds extracted durable facts (preferences, past
	// interactions, notes derived from the personality profile)
	LongTerm []string
}

// HistoryEntry is one role/content pair handed to a generation backend
type HistoryEntry struct {
	Role    string
	Content string
}

// ContextBlock renders the summary and long-term tiers as one prompt
// section so history older than the immediate tier still reaches the
// backend. Empty when both tiers are empty.
func (m *ConversationMemory) ContextBlock() string {
	if m.Summary == "" && len(m.LongTerm) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("## Bối cảnh hội thoại trước đó")
	if m.Summary != "" {
		b.WriteString("\n")
		b.WriteString(m.Summary)
	}
	for _, note := range m.LongTerm {
		b.WriteString("\n- ")
		b.WriteString(note)
	}
	return b.String()
}

// History flattens the immediate tier into role/content pairs for the
// provider gateway.
func (m *ConversationMemory) History() []HistoryEntry {
	out := make([]HistoryEntry, 0, len(m.Immediate))
	for _, msg := range m.Immediate {
		out = append(out, HistoryEntry{
			Role:    msg.Role.String(),
			Content: msg.Content,
		})
	}
	return out
}
