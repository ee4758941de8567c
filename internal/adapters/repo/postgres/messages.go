package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bnema/deck/internal/domain"
	"github.com/bnema/deck/internal/ports"
)

type MessageRepository struct {
	store *Store
}

var _ ports.MessageRepository = (*MessageRepository)(nil)

const messageColumns = `message_id::text, thread_id::text, type, is_llm_message, content, metadata, created_at`

func scanMessage(row pgx.Row) (domain.Message, error) {
	var msg domain.Message
	var id, threadID, msgType string
	var content, metadata []byte
	if err := row.Scan(&id, &threadID, &msgType, &msg.IsLLMMessage, &content, &metadata, &msg.CreatedAt); err != nil {
		return domain.Message{}, err
	}
	msg.ID = domain.MessageID(id)
	msg.ThreadID = domain.ThreadID(threadID)
	msg.Type = domain.MessageType(msgType)
	msg.Content = content
	msg.Metadata = metadata

	return msg, nil
}

func (r *MessageRepository) ListByThread(ctx context.Context, threadID domain.ThreadID) ([]domain.Message, error) {
	messages := make([]domain.Message, 0)
	err := r.store.execInTx(ctx, func(ctx context.Context, tx pgx.Tx, _ domain.Session) error {
		rows, err := tx.Query(ctx, `SELECT `+messageColumns+` FROM messages WHERE thread_id = $1 ORDER BY created_at ASC`, string(threadID))
		if err != nil {
			return fmt.Errorf("query messages: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			msg, err := scanMessage(rows)
			if err != nil {
				return fmt.Errorf("scan message: %w", err)
			}
			messages = append(messages, msg)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return messages, nil
}

func (r *MessageRepository) Create(ctx context.Context, msg domain.Message) (domain.Message, error) {
	var created domain.Message
	err := r.store.execInTx(ctx, func(ctx context.Context, tx pgx.Tx, _ domain.Session) error {
		var err error
		created, err = scanMessage(tx.QueryRow(ctx, `
			INSERT INTO messages (message_id, thread_id, type, is_llm_message, content, metadata, created_at)
			VALUES ($1, $2, $3, $4, $5::jsonb, $6::jsonb, $7)
			RETURNING `+messageColumns,
			uuid.NewString(), string(msg.ThreadID), string(msg.Type), msg.IsLLMMessage,
			string(jsonDocument(msg.Content)), string(jsonDocument(msg.Metadata)), msg.CreatedAt,
		))
		if err != nil {
			return fmt.Errorf("insert message: %w", err)
		}
		return nil
	})

	return created, err
}
