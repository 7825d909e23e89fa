package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/JonMunkholm/MedQA/internal/config"
	"github.com/JonMunkholm/MedQA/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "journal.db")
	store, err := OpenSQLite(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func entry(id, session string, action core.AuditAction, at time.Time) core.AuditEntry {
	return core.AuditEntry{
		ID:          id,
		SessionID:   session,
		Action:      action,
		Severity:    core.SeverityMedium,
		RecordIndex: 2,
		Field:       "question_persian",
		OldValue:    "قدیم",
		NewValue:    "جدید",
		IPAddress:   "10.0.0.7",
		CreatedAt:   at,
	}
}

func TestSQLiteStore_InsertAndList(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, store.InsertAudit(ctx, entry("a", "s1", core.ActionLoad, base)))
	require.NoError(t, store.InsertAudit(ctx, entry("b", "s1", core.ActionFieldEdit, base.Add(time.Second))))
	require.NoError(t, store.InsertAudit(ctx, entry("c", "s2", core.ActionFieldEdit, base.Add(2*time.Second))))

	got, err := store.ListAudit(ctx, "s1", 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID, "newest first")
	assert.Equal(t, core.ActionFieldEdit, got[0].Action)
	assert.Equal(t, "جدید", got[0].NewValue)
	assert.Equal(t, 2, got[0].RecordIndex)
	assert.Equal(t, base.Add(time.Second), got[0].CreatedAt)

	limited, err := store.ListAudit(ctx, "s1", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	none, err := store.ListAudit(ctx, "missing", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSQLiteStore_Purge(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, store.InsertAudit(ctx, entry("old", "s1", core.ActionLoad, now.AddDate(0, 0, -100))))
	require.NoError(t, store.InsertAudit(ctx, entry("new", "s1", core.ActionLoad, now)))

	purged, err := store.PurgeAudit(ctx, now.AddDate(0, 0, -90))
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	left, err := store.ListAudit(ctx, "s1", 0)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "new", left[0].ID)
}

func TestOpen_Drivers(t *testing.T) {
	ctx := context.Background()

	store, err := Open(ctx, config.AuditConfig{Driver: config.AuditDriverNone})
	require.NoError(t, err)
	assert.Nil(t, store)

	store, err = Open(ctx, config.AuditConfig{
		Driver: config.AuditDriverSQLite,
		DSN:    "file:" + filepath.Join(t.TempDir(), "j.db"),
	})
	require.NoError(t, err)
	require.NotNil(t, store)
	assert.NoError(t, store.Close())

	_, err = Open(ctx, config.AuditConfig{Driver: "mysql"})
	assert.Error(t, err)
}

func TestParseClientIP(t *testing.T) {
	assert.Nil(t, parseClientIP(""))
	assert.Nil(t, parseClientIP("not-an-ip"))
	assert.Equal(t, "10.1.2.3", parseClientIP("10.1.2.3:5555").String())
	assert.Equal(t, "::1", parseClientIP("::1").String())
}

func TestPgUUIDRoundTrip(t *testing.T) {
	const id = "6f1c2d4e-8a7b-4c3d-9e2f-1a2b3c4d5e6f"
	assert.Equal(t, id, pgUUIDToString(toPgUUID(id)))
	assert.False(t, toPgUUID("nope").Valid)
	assert.False(t, toPgText("").Valid)
	assert.Equal(t, " x ", toPgText(" x ").String)
}
