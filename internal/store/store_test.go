package store

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "giiker.db"))
	require.NoError(t, err)
	require.NoError(t, db.MigrateUp())
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrateUpIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.MigrateUp())

	var version int
	require.NoError(t, db.QueryRow("SELECT MAX(version) FROM schema_version").Scan(&version))
	assert.Equal(t, 1, version)
}

func TestDeviceUpsert(t *testing.T) {
	db := openTestDB(t)
	devices := NewDeviceRepository(db)

	require.NoError(t, devices.Upsert("AA:BB:CC:DD:EE:FF", "GiC-a1b2", -60))

	d, err := devices.Get("AA:BB:CC:DD:EE:FF")
	require.NoError(t, err)
	assert.Equal(t, "GiC-a1b2", d.Name)
	assert.Equal(t, -60, d.RSSI)
	firstSeen := d.FirstSeenMs

	// A later sighting refreshes everything but first_seen_ms.
	require.NoError(t, devices.Upsert("AA:BB:CC:DD:EE:FF", "GiC-a1b2", -45))

	d, err = devices.Get("AA:BB:CC:DD:EE:FF")
	require.NoError(t, err)
	assert.Equal(t, -45, d.RSSI)
	assert.Equal(t, firstSeen, d.FirstSeenMs)
	assert.GreaterOrEqual(t, d.LastSeenMs, firstSeen)

	list, err := devices.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestDeviceGetMissing(t *testing.T) {
	db := openTestDB(t)
	devices := NewDeviceRepository(db)

	_, err := devices.Get("00:00:00:00:00:00")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestSessionLifecycle(t *testing.T) {
	db := openTestDB(t)
	devices := NewDeviceRepository(db)
	sessions := NewSessionRepository(db)

	require.NoError(t, devices.Upsert("AA:BB:CC:DD:EE:FF", "GiS_m3", -50))

	start := 82
	id, err := sessions.Start("AA:BB:CC:DD:EE:FF", &start)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	end := 79
	require.NoError(t, sessions.End(id, &end))

	recent, err := sessions.Recent("AA:BB:CC:DD:EE:FF", 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)

	s := recent[0]
	assert.Equal(t, id, s.SessionID)
	require.NotNil(t, s.BatteryStart)
	assert.Equal(t, 82, *s.BatteryStart)
	require.NotNil(t, s.BatteryEnd)
	assert.Equal(t, 79, *s.BatteryEnd)
	require.NotNil(t, s.EndedAtMs)
	assert.GreaterOrEqual(t, *s.EndedAtMs, s.StartedAtMs)
}

func TestSessionRequiresDevice(t *testing.T) {
	db := openTestDB(t)
	sessions := NewSessionRepository(db)

	_, err := sessions.Start("not-registered", nil)
	assert.Error(t, err, "foreign keys should reject sessions for unknown devices")
}

func TestSnapshotLatestWins(t *testing.T) {
	db := openTestDB(t)
	devices := NewDeviceRepository(db)
	snapshots := NewSnapshotRepository(db)

	require.NoError(t, devices.Upsert("AA:BB:CC:DD:EE:FF", "GiY cube", -55))

	solvedFacelets := "UUUUUUUUURRRRRRRRRFFFFFFFFFDDDDDDDDDLLLLLLLLLBBBBBBBBB"
	battery := 90
	moveCount := int64(1234)

	require.NoError(t, snapshots.Save("AA:BB:CC:DD:EE:FF", solvedFacelets, true, &battery, &moveCount))

	scrambled := "RUUUUUUUUBRRRRRRRRFFFFFFFFFDDDDDDDDDLLLLLLLLLUBBBBBBBB"
	require.NoError(t, snapshots.Save("AA:BB:CC:DD:EE:FF", scrambled, false, nil, nil))

	snap, err := snapshots.Get("AA:BB:CC:DD:EE:FF")
	require.NoError(t, err)
	assert.Equal(t, scrambled, snap.Facelets)
	assert.False(t, snap.Solved)
	assert.Nil(t, snap.Battery)
	assert.Nil(t, snap.MoveCount)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&count))
	assert.Equal(t, 1, count, "snapshots should keep one row per device")

	// Saving refreshes the registry's last_seen_ms.
	d, err := devices.Get("AA:BB:CC:DD:EE:FF")
	require.NoError(t, err)
	assert.Equal(t, snap.TakenAtMs, d.LastSeenMs)
}

func TestSnapshotGetMissing(t *testing.T) {
	db := openTestDB(t)
	snapshots := NewSnapshotRepository(db)

	_, err := snapshots.Get("00:00:00:00:00:00")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}
