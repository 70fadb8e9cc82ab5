package notion

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpcarmona/atenea/internal/config"
	"github.com/jpcarmona/atenea/internal/domain"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	svc, err := NewService(config.NotionConfig{
		APIKey:          "secret_test",
		TasksDatabaseID: "db_tasks",
	}, logger)
	require.NoError(t, err)
	return svc
}

// The write guards fire before any API call, so no network is involved.

func TestAddTaskRequiresName(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.AddTask(context.Background(), domain.TaskPayload{DueDate: "2026-08-29"})
	assert.ErrorIs(t, err, domain.ErrEmptyContent)
}

func TestAddContactRequiresName(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.AddContact(context.Background(), domain.ContactPayload{Email: "ana@example.com"})
	assert.ErrorIs(t, err, domain.ErrEmptyContent)
}

func TestTaskWritesRequirePageID(t *testing.T) {
	svc := newTestService(t)
	name := "Comprar leche"

	err := svc.UpdateTask(context.Background(), "", domain.TaskUpdates{Name: &name})
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	err = svc.ArchiveTask(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestContactWritesRequirePageID(t *testing.T) {
	svc := newTestService(t)
	notes := "amiga del trabajo"

	err := svc.UpdateContact(context.Background(), "", domain.ContactUpdates{Notes: &notes})
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	err = svc.ArchiveContact(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}
