package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type MessageID string
type MessageType string

const (
	MessageTypeUser      MessageType = "user"
	MessageTypeAssistant MessageType = "assistant"
	MessageTypeTool      MessageType = "tool"
	MessageTypeStatus    MessageType = "status"
	MessageTypeCost      MessageType = "cost"
	MessageTypeSummary   MessageType = "summary"
)

type Message struct {
	ID           MessageID
	ThreadID     ThreadID
	Type         MessageType
	IsLLMMessage bool
	// Content and Metadata hold the JSON documents stored with the row.
	Content   json.RawMessage
	Metadata  json.RawMessage
	CreatedAt time.Time
}

// Visible reports whether the message belongs in a conversation transcript.
// Cost and summary rows are bookkeeping written by the backend.
func (m Message) Visible() bool {
	switch m.Type {
	case MessageTypeCost, MessageTypeSummary:
		return false
	default:
		return true
	}
}

// Text extracts the human readable part of the message content.
func (m Message) Text() string {
	return contentText(m.Content)
}

func NewUserMessage(threadID ThreadID, text string) (Message, error) {
	if strings.TrimSpace(text) == "" {
		return Message{}, fmt.Errorf("message content is required")
	}

	content, err := json.Marshal(struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}{Role: "user", Content: text})
	if err != nil {
		return Message{}, fmt.Errorf("encode message content: %w", err)
	}

	return Message{
		ThreadID:     threadID,
		Type:         MessageTypeUser,
		IsLLMMessage: true,
		Content:      content,
		Metadata:     json.RawMessage(`{}`),
	}, nil
}

// contentText accepts the shapes the backend writes: a JSON object with a
// "content" field, a JSON string holding such an object, or a plain string.
func contentText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		trimmed := strings.TrimSpace(asString)
		if strings.HasPrefix(trimmed, "{") {
			if inner := contentText(json.RawMessage(trimmed)); inner != "" {
				return inner
			}
		}
		return asString
	}

	var object struct {
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(raw, &object); err == nil && len(object.Content) > 0 {
		var text string
		if err := json.Unmarshal(object.Content, &text); err == nil {
			return text
		}
		return string(object.Content)
	}

	return string(raw)
}
