package notify

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNoOpNotifier_SendReviewAlert(t *testing.T) {
	t.Parallel()

	n := NewNoOpNotifier(slog.New(slog.NewTextHandler(io.Discard, nil)))
	alert := testAlert(40)
	require.NoError(t, n.SendReviewAlert(context.Background(), &alert))
}

func TestNoOpNotifier_NilLogger(t *testing.T) {
	t.Parallel()

	n := NewNoOpNotifier(nil)
	require.NoError(t, n.SendReviewAlert(context.Background(), &ReviewAlert{}))
}

// compile-time interface checks.
var (
	_ Notifier = (*NoOpNotifier)(nil)
	_ Notifier = (*DiscordNotifier)(nil)
)
