package toml

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/bnema/deck/internal/domain"
	"github.com/bnema/deck/internal/ports"
)

type MessageRepository struct {
	repo *Repository
}

var _ ports.MessageRepository = (*MessageRepository)(nil)

func (m *MessageRepository) ListByThread(ctx context.Context, threadID domain.ThreadID) ([]domain.Message, error) {
	var messages []domain.Message
	err := m.repo.read(ctx, func(file *fileSchema, owner string) error {
		if !threadVisible(file, threadID, owner) {
			messages = []domain.Message{}
			return nil
		}

		messages = make([]domain.Message, 0)
		for _, entry := range file.Messages {
			if entry.ThreadID == string(threadID) {
				messages = append(messages, fromMessageSchema(entry))
			}
		}
		sort.SliceStable(messages, func(i, j int) bool {
			return messages[i].CreatedAt.Before(messages[j].CreatedAt)
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return messages, nil
}

func (m *MessageRepository) Create(ctx context.Context, msg domain.Message) (domain.Message, error) {
	err := m.repo.update(ctx, func(file *fileSchema, owner string) error {
		if err := ownedThread(file, msg.ThreadID, owner); err != nil {
			return err
		}

		msg.ID = domain.MessageID(uuid.NewString())
		if len(msg.Content) == 0 {
			msg.Content = json.RawMessage(`{}`)
		}
		file.Messages = append(file.Messages, messageSchema{
			ID:           string(msg.ID),
			ThreadID:     string(msg.ThreadID),
			Type:         string(msg.Type),
			IsLLMMessage: msg.IsLLMMessage,
			Content:      string(msg.Content),
			Metadata:     string(msg.Metadata),
			CreatedAt:    formatTime(msg.CreatedAt),
		})
		return nil
	})
	if err != nil {
		return domain.Message{}, err
	}

	return msg, nil
}

func ownedThread(file *fileSchema, threadID domain.ThreadID, owner string) error {
	for _, entry := range file.Threads {
		if entry.ID != string(threadID) {
			continue
		}
		if entry.AccountID == owner {
			return nil
		}
		if entry.IsPublic {
			return fmt.Errorf("%w: thread %s belongs to another account", domain.ErrPermissionDenied, threadID)
		}
		break
	}

	return fmt.Errorf("%w: %s", domain.ErrThreadNotFound, threadID)
}

func threadVisible(file *fileSchema, threadID domain.ThreadID, owner string) bool {
	for _, entry := range file.Threads {
		if entry.ID == string(threadID) {
			return entry.visibleTo(owner)
		}
	}

	return false
}

func fromMessageSchema(entry messageSchema) domain.Message {
	msg := domain.Message{
		ID:           domain.MessageID(entry.ID),
		ThreadID:     domain.ThreadID(entry.ThreadID),
		Type:         domain.MessageType(entry.Type),
		IsLLMMessage: entry.IsLLMMessage,
		Content:      json.RawMessage(entry.Content),
		CreatedAt:    parseTime(entry.CreatedAt),
	}
	if entry.Metadata != "" {
		msg.Metadata = json.RawMessage(entry.Metadata)
	}

	return msg
}
