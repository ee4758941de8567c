package ports

import (
	"context"

	"github.com/bnema/deck/internal/domain"
)

// RunStreamSink receives the events of one physical run stream connection.
type RunStreamSink interface {
	HandleFrame(data []byte)
	// HandleError reports a transient failure; the transport may still reconnect.
	HandleError(err error)
	// HandleClosed reports that the transport gave up. err is nil on a clean end of stream.
	HandleClosed(err error)
}

type RunStream interface {
	Close() error
}

type RunStreamOpener interface {
	OpenRunStream(ctx context.Context, runID domain.AgentRunID, sink RunStreamSink) (RunStream, error)
}
