// Package notify is the "transient message" boundary between the client core
// and whatever renders messages to the user.
package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/ignitegym/internal/client/apperr"
)

// Notifier shows a short message with the given severity.
type Notifier interface {
	Show(ctx context.Context, title string, severity apperr.Severity)
}

// Error shows a classified error with its own severity. A nil err is ignored.
func Error(ctx context.Context, n Notifier, err *apperr.Error) {
	if err == nil {
		return
	}
	n.Show(ctx, err.Message, err.Severity)
}

// WriterNotifier prints messages as single lines, e.g. "[error] Invalid e-mail".
type WriterNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

func (n *WriterNotifier) Show(_ context.Context, title string, severity apperr.Severity) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.w, "[%s] %s\n", severity, title)
}

// Message is a notification captured by Recorder.
type Message struct {
	Title    string
	Severity apperr.Severity
}

// Recorder keeps every shown message in memory.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

func (r *Recorder) Show(_ context.Context, title string, severity apperr.Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Message{Title: title, Severity: severity})
}

// Messages returns a copy of the recorded messages in order.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.messages...)
}
