// Package notify delivers the success and failure messages shown to console users.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/ashendes/jewelry-admin/internal/metrics"
	log "github.com/sirupsen/logrus"
)

// Kind distinguishes success toasts from failure toasts
type Kind string

// Kind values
const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notification is one user-facing message
type Notification struct {
	Kind    Kind      `json:"kind"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Notifier receives notifications emitted while handling ctx
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Success builds a success notification
func Success(msg string) Notification {
	return Notification{Kind: KindSuccess, Message: msg, At: time.Now()}
}

// Error builds a failure notification
func Error(msg string) Notification {
	return Notification{Kind: KindError, Message: msg, At: time.Now()}
}

// LogNotifier writes notifications to the log and counts them
type LogNotifier struct {
	log *log.Entry
}

// NewLogNotifier creates a LogNotifier; a nil entry uses the standard logger
func NewLogNotifier(entry *log.Entry) *LogNotifier {
	if entry == nil {
		entry = log.WithField("component", "notify")
	}
	return &LogNotifier{log: entry}
}

// Notify implements Notifier
func (l *LogNotifier) Notify(_ context.Context, n Notification) {
	metrics.NotificationsTotal.WithLabelValues(string(n.Kind)).Inc()

	entry := l.log.WithFields(log.Fields{"kind": n.Kind, "message": n.Message})
	if n.Kind == KindError {
		entry.Warn("Notification")
		return
	}
	entry.Info("Notification")
}

// Recorder keeps every notification in memory
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

// Notify implements Notifier
func (r *Recorder) Notify(_ context.Context, n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

// Items returns a copy of what was recorded
func (r *Recorder) Items() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.items))
	copy(out, r.items)
	return out
}

// Reset forgets everything recorded so far
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
}

type collectorKey struct{}

// WithCollector attaches a Recorder to ctx so that a Collecting notifier
// can hand the notifications of one request back to its handler
func WithCollector(ctx context.Context) (context.Context, *Recorder) {
	rec := &Recorder{}
	return context.WithValue(ctx, collectorKey{}, rec), rec
}

// Collecting forwards notifications to the Recorder attached to ctx, if any
type Collecting struct{}

// Notify implements Notifier
func (Collecting) Notify(ctx context.Context, n Notification) {
	if rec, ok := ctx.Value(collectorKey{}).(*Recorder); ok {
		rec.Notify(ctx, n)
	}
}

// Multi fans a notification out to several notifiers
type Multi []Notifier

// Notify implements Notifier
func (m Multi) Notify(ctx context.Context, n Notification) {
	for _, notifier := range m {
		notifier.Notify(ctx, n)
	}
}
