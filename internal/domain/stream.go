package domain

import (
	"encoding/json"
	"strings"
)

const (
	FrameTypePing   = "ping"
	FrameTypeStatus = "status"
)

// StreamFrame is one decoded Server-Sent Event payload of an agent run stream.
type StreamFrame struct {
	Type     string          `json:"type"`
	Status   RunStatus       `json:"status,omitempty"`
	Message  string          `json:"message,omitempty"`
	Content  json.RawMessage `json:"content,omitempty"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
	// Raw is the payload as received.
	Raw []byte `json:"-"`
}

// ParseStreamFrame decodes a frame. Payloads that are not JSON objects are
// returned with only Raw set together with the decode error.
func ParseStreamFrame(data []byte) (StreamFrame, error) {
	var frame StreamFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		return StreamFrame{Raw: data}, err
	}
	frame.Raw = data

	return frame, nil
}

func (f StreamFrame) IsPing() bool {
	return f.Type == FrameTypePing
}

func (f StreamFrame) IsStatus() bool {
	return f.Type == FrameTypeStatus
}

// Terminal reports whether the frame ends the run: a completion status or a
// "run not found" answer from the stream endpoint.
func (f StreamFrame) Terminal() bool {
	if !f.IsStatus() {
		return false
	}

	return f.Status.Terminal() || f.RunNotFound()
}

func (f StreamFrame) RunNotFound() bool {
	if !f.IsStatus() {
		return false
	}
	message := strings.ToLower(f.Message)

	return strings.Contains(message, "not found") || strings.Contains(message, "not available for streaming")
}

func (f StreamFrame) Text() string {
	return contentText(f.Content)
}
