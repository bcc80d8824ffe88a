package chalito

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"
)

// NoticeLevel classifies a user-facing notification.
type NoticeLevel string

const (
	// NoticeSuccess confirms a completed action.
	NoticeSuccess NoticeLevel = "success"
	// NoticeError reports a failure the user should read.
	NoticeError NoticeLevel = "error"
	// NoticeWarning flags a condition that did not fail the action.
	NoticeWarning NoticeLevel = "warning"
	// NoticeInfo is neutral feedback.
	NoticeInfo NoticeLevel = "info"
)

// Notice is the canonical notification model pushed to the sink.
type Notice struct {
	Timestamp time.Time     `json:"timestamp"`
	Level     NoticeLevel   `json:"level"`
	Message   string        `json:"message"`
	Duration  time.Duration `json:"duration"`
}

// NotifyOptions tunes a single notification. Duration 0 means the sink should
// keep the notice visible until dismissed; a negative Duration asks for the
// sink's default.
type NotifyOptions struct {
	Duration time.Duration
}

// Notifier receives user-facing messages from the client. It is a
// collaborator: the SDK pushes notices into it but does not own rendering,
// stacking, or dismissal.
type Notifier interface {
	Emit(ctx context.Context, n Notice)
}

// NoOpNotifier drops all notices.
type NoOpNotifier struct{}

// Emit implements [Notifier].
func (NoOpNotifier) Emit(context.Context, Notice) {}

// ChannelNotifier writes notices into a buffered channel, for hosts that
// render toasts from their own event loop.
type ChannelNotifier struct {
	notices chan Notice
}

// NewChannelNotifier creates a ChannelNotifier with the given buffer capacity.
func NewChannelNotifier(buffer int) *ChannelNotifier {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelNotifier{
		notices: make(chan Notice, buffer),
	}
}

// Emit implements [Notifier].
func (s *ChannelNotifier) Emit(ctx context.Context, n Notice) {
	select {
	case s.notices <- n:
	case <-ctx.Done():
	}
}

// Notices returns the receive side of the channel.
func (s *ChannelNotifier) Notices() <-chan Notice {
	return s.notices
}

// JSONWriterNotifier writes one JSON object per line, useful for headless
// deployments that forward notices to a log pipeline.
type JSONWriterNotifier struct {
	writer io.Writer
	mu     sync.Mutex
}

// NewJSONWriterNotifier creates a JSONWriterNotifier that writes to w.
func NewJSONWriterNotifier(w io.Writer) *JSONWriterNotifier {
	return &JSONWriterNotifier{
		writer: w,
	}
}

// Emit implements [Notifier].
func (s *JSONWriterNotifier) Emit(_ context.Context, n Notice) {
	if s == nil || s.writer == nil {
		return
	}
	data, err := json.Marshal(n)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = s.writer.Write(data)
	_, _ = s.writer.Write([]byte("\n"))
}
