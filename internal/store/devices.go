package store

import (
	"fmt"
	"time"
)

// Device represents a known cube in the registry.
type Device struct {
	Address     string
	Name        string
	RSSI        int
	FirstSeenMs int64
	LastSeenMs  int64
}

// DeviceRepository provides access to the device registry.
type DeviceRepository struct {
	db *DB
}

// NewDeviceRepository creates a new device repository.
func NewDeviceRepository(db *DB) *DeviceRepository {
	return &DeviceRepository{db: db}
}

// Upsert records a device sighting. First sight inserts the row; later
// sightings refresh the name, signal strength and last_seen_ms while
// keeping first_seen_ms.
func (r *DeviceRepository) Upsert(address, name string, rssi int) error {
	now := time.Now().UnixMilli()
	_, err := r.db.Exec(`
		INSERT INTO devices (address, name, rssi, first_seen_ms, last_seen_ms)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(address) DO UPDATE SET
			name = excluded.name,
			rssi = excluded.rssi,
			last_seen_ms = excluded.last_seen_ms
	`, address, name, rssi, now, now)

	if err != nil {
		return fmt.Errorf("failed to upsert device: %w", err)
	}
	return nil
}

// Get retrieves a device by address. A missing device surfaces as a
// wrapped sql.ErrNoRows.
func (r *DeviceRepository) Get(address string) (*Device, error) {
	var d Device
	err := r.db.QueryRow(`
		SELECT address, name, rssi, first_seen_ms, last_seen_ms
		FROM devices
		WHERE address = ?
	`, address).Scan(&d.Address, &d.Name, &d.RSSI, &d.FirstSeenMs, &d.LastSeenMs)

	if err != nil {
		return nil, fmt.Errorf("failed to get device: %w", err)
	}
	return &d, nil
}

// List retrieves all known devices, most recently seen first.
func (r *DeviceRepository) List() ([]Device, error) {
	rows, err := r.db.Query(`
		SELECT address, name, rssi, first_seen_ms, last_seen_ms
		FROM devices
		ORDER BY last_seen_ms DESC
	`)

	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	defer rows.Close()

	var devices []Device
	for rows.Next() {
		var d Device
		err := rows.Scan(&d.Address, &d.Name, &d.RSSI, &d.FirstSeenMs, &d.LastSeenMs)
		if err != nil {
			return nil, fmt.Errorf("failed to scan device: %w", err)
		}
		devices = append(devices, d)
	}

	return devices, nil
}
