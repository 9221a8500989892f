package notify

import (
	"context"

	"github.com/sirupsen/logrus"
)

type Severity string

const (
	SeverityDefault     Severity = "default"
	SeverityDestructive Severity = "destructive"
)

// Toast is one user-facing confirmation or rejection message.
type Toast struct {
	Title       string
	Description string
	Severity    Severity
}

// Notifier surfaces toasts to the user. Fire-and-forget: callers never
// consume a return value.
type Notifier interface {
	Notify(ctx context.Context, toast Toast)
}

// Multi fans each toast out to every wrapped notifier, in order.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, toast Toast) {
	for _, n := range m {
		n.Notify(ctx, toast)
	}
}

// LogNotifier writes toasts to the application log.
type LogNotifier struct {
	Logger *logrus.Logger
}

func (n *LogNotifier) Notify(_ context.Context, toast Toast) {
	entry := n.Logger.WithFields(logrus.Fields{
		"title":    toast.Title,
		"severity": toast.Severity,
	})

	if toast.Severity == SeverityDestructive {
		entry.Warn(toast.Description)
		return
	}
	entry.Info(toast.Description)
}
