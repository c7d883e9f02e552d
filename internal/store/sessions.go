package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Session represents one connection to a cube.
type Session struct {
	SessionID     string
	DeviceAddress string
	StartedAtMs   int64
	EndedAtMs     *int64
	BatteryStart  *int
	BatteryEnd    *int
}

// SessionRepository provides access to connection sessions.
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Start creates a new session for a device and returns its ID. The
// device must already exist in the registry. Pass nil when the battery
// level is not known yet.
func (r *SessionRepository) Start(deviceAddress string, batteryStart *int) (string, error) {
	id := uuid.New().String()
	startedAt := time.Now().UnixMilli()

	_, err := r.db.Exec(`
		INSERT INTO sessions (session_id, device_address, started_at_ms, battery_start)
		VALUES (?, ?, ?, ?)
	`, id, deviceAddress, startedAt, batteryStart)

	if err != nil {
		return "", fmt.Errorf("failed to start session: %w", err)
	}

	return id, nil
}

// End marks a session as complete.
func (r *SessionRepository) End(sessionID string, batteryEnd *int) error {
	endedAt := time.Now().UnixMilli()

	_, err := r.db.Exec(`
		UPDATE sessions
		SET ended_at_ms = ?, battery_end = ?
		WHERE session_id = ?
	`, endedAt, batteryEnd, sessionID)

	if err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	return nil
}

// Recent retrieves the most recent sessions for a device, newest first.
func (r *SessionRepository) Recent(deviceAddress string, limit int) ([]Session, error) {
	rows, err := r.db.Query(`
		SELECT session_id, device_address, started_at_ms, ended_at_ms, battery_start, battery_end
		FROM sessions
		WHERE device_address = ?
		ORDER BY started_at_ms DESC
		LIMIT ?
	`, deviceAddress, limit)

	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var s Session
		err := rows.Scan(&s.SessionID, &s.DeviceAddress, &s.StartedAtMs, &s.EndedAtMs, &s.BatteryStart, &s.BatteryEnd)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}

	return sessions, nil
}
