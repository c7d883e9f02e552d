package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Snapshot is the latest decoded state stored for a device.
type Snapshot struct {
	DeviceAddress string
	Facelets      string
	Solved        bool
	Battery       *int
	MoveCount     *int64
	TakenAtMs     int64
}

// SnapshotRepository provides access to per-device state snapshots.
type SnapshotRepository struct {
	db *DB
}

// NewSnapshotRepository creates a new snapshot repository.
func NewSnapshotRepository(db *DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Save stores the latest snapshot for a device, replacing any previous
// one, and refreshes the registry's last_seen_ms in the same
// transaction. The device must already exist in the registry.
func (r *SnapshotRepository) Save(deviceAddress, facelets string, solved bool, battery *int, moveCount *int64) error {
	takenAt := time.Now().UnixMilli()

	return r.db.Transaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO snapshots (device_address, facelets, solved, battery, move_count, taken_at_ms)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(device_address) DO UPDATE SET
				facelets = excluded.facelets,
				solved = excluded.solved,
				battery = excluded.battery,
				move_count = excluded.move_count,
				taken_at_ms = excluded.taken_at_ms
		`, deviceAddress, facelets, solved, battery, moveCount, takenAt)
		if err != nil {
			return fmt.Errorf("failed to save snapshot: %w", err)
		}

		_, err = tx.Exec(`
			UPDATE devices SET last_seen_ms = ? WHERE address = ?
		`, takenAt, deviceAddress)
		if err != nil {
			return fmt.Errorf("failed to touch device: %w", err)
		}

		return nil
	})
}

// Get retrieves the latest snapshot for a device. A missing snapshot
// surfaces as a wrapped sql.ErrNoRows.
func (r *SnapshotRepository) Get(deviceAddress string) (*Snapshot, error) {
	var s Snapshot
	err := r.db.QueryRow(`
		SELECT device_address, facelets, solved, battery, move_count, taken_at_ms
		FROM snapshots
		WHERE device_address = ?
	`, deviceAddress).Scan(&s.DeviceAddress, &s.Facelets, &s.Solved, &s.Battery, &s.MoveCount, &s.TakenAtMs)

	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	return &s, nil
}
