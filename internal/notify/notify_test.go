package notify

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	toasts []Toast
}

func (r *recordingNotifier) Notify(_ context.Context, toast Toast) {
	r.toasts = append(r.toasts, toast)
}

func TestMultiFansOutInOrder(t *testing.T) {
	first := new(recordingNotifier)
	second := new(recordingNotifier)

	notifier := Multi{first, second}
	notifier.Notify(context.Background(), Toast{Title: "Module Unlocked!"})

	require.Len(t, first.toasts, 1)
	require.Len(t, second.toasts, 1)
	assert.Equal(t, "Module Unlocked!", first.toasts[0].Title)
	assert.Equal(t, "Module Unlocked!", second.toasts[0].Title)
}

func TestLogNotifierLevels(t *testing.T) {
	logger, hook := logtest.NewNullLogger()

	notifier := &LogNotifier{Logger: logger}
	notifier.Notify(context.Background(), Toast{
		Title:       "Module Completed!",
		Description: "Nice work, you earned 1 key.",
	})
	notifier.Notify(context.Background(), Toast{
		Title:       "Not enough keys",
		Description: "You need 3 key(s) to unlock this module",
		Severity:    SeverityDestructive,
	})

	entries := hook.AllEntries()
	require.Len(t, entries, 2)

	assert.Equal(t, logrus.InfoLevel, entries[0].Level)
	assert.Equal(t, "Module Completed!", entries[0].Data["title"])

	assert.Equal(t, logrus.WarnLevel, entries[1].Level)
	assert.Equal(t, "Not enough keys", entries[1].Data["title"])
	assert.Equal(t, "You need 3 key(s) to unlock this module", entries[1].Message)
}
