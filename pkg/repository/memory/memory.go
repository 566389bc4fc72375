package memory

import (
	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/interfaces"
)

// Memory is an in-memory repository for development and tests
type Memory struct {
	module       *moduleRepository
	conversation *conversationRepository
}

var _ interfaces.Repository = &Memory{}

// New creates an empty in-memory repository
func New() *Memory {
	return &Memory{
		module:       newModuleRepository(),
		conversation: newConversationRepository(),
	}
}

func (m *Memory) Module() interfaces.ModuleRepository {
	return m.module
}

func (m *Memory) Conversation() interfaces.ConversationRepository {
	return m.conversation
}

func (m *Memory) Close() error {
	return nil
}
