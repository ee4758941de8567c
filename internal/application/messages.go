package application

import (
	"context"
	"fmt"

	"github.com/bnema/deck/internal/domain"
)

// GetMessages returns the conversation of a thread without the cost and
// summary bookkeeping rows.
func (s *Service) GetMessages(ctx context.Context, threadID domain.ThreadID) ([]domain.Message, error) {
	messages, err := s.messageList.load(ctx, string(threadID), func(ctx context.Context) ([]domain.Message, error) {
		return s.messages.ListByThread(ctx, threadID)
	})
	if err != nil {
		return nil, fmt.Errorf("list messages of thread %s: %w", threadID, err)
	}

	visible := make([]domain.Message, 0, len(messages))
	for _, msg := range messages {
		if msg.Visible() {
			visible = append(visible, msg)
		}
	}

	return visible, nil
}

func (s *Service) AddMessage(ctx context.Context, msg domain.Message) (domain.Message, error) {
	if msg.ThreadID == "" {
		return domain.Message{}, fmt.Errorf("thread id is required")
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = s.clock.Now().UTC()
	}

	created, err := s.messages.Create(ctx, msg)
	if err != nil {
		return domain.Message{}, fmt.Errorf("add message to thread %s: %w", msg.ThreadID, err)
	}
	s.messageList.invalidate(string(msg.ThreadID))

	return created, nil
}

func (s *Service) AddUserMessage(ctx context.Context, threadID domain.ThreadID, text string) (domain.Message, error) {
	msg, err := domain.NewUserMessage(threadID, text)
	if err != nil {
		return domain.Message{}, err
	}

	return s.AddMessage(ctx, msg)
}

// GetThreadView loads a thread together with its visible messages.
func (s *Service) GetThreadView(ctx context.Context, threadID domain.ThreadID) (ThreadView, error) {
	thread, err := s.GetThread(ctx, threadID)
	if err != nil {
		return ThreadView{}, err
	}
	messages, err := s.GetMessages(ctx, threadID)
	if err != nil {
		return ThreadView{}, err
	}

	return ThreadView{Thread: thread, Messages: messages}, nil
}
