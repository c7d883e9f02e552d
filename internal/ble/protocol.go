// Package ble provides low-level BLE communication with GiiKER cubes.
//
// The cube exposes two GATT services. The state service notifies a full
// telemetry frame after every turn and also answers direct reads. The
// system service carries a request/response miniprotocol: single-byte
// commands are written to one characteristic and the responses arrive as
// notifications on another, first byte echoing the command code.
package ble

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

// GiiKER GATT identifiers. These are 16-bit UUIDs under the Bluetooth
// base UUID (0xAADB is 0000aadb-0000-1000-8000-00805f9b34fb).
const (
	StateServiceID  uint16 = 0xAADB // cube state service
	StateCharID     uint16 = 0xAADC // notify + read: telemetry frames
	SystemServiceID uint16 = 0xAAAA // system service
	SystemReadID    uint16 = 0xAAAB // notify: command responses
	SystemWriteID   uint16 = 0xAAAC // write: single-byte commands
)

// Command codes written to the system write characteristic.
const (
	CmdRequestBattery   byte = 0xB5
	CmdRequestMoveCount byte = 0xCC
	CmdResetSolved      byte = 0xA1
	CmdResetCustom      byte = 0xA4
)

// Errors
var (
	ErrNotConnected     = errors.New("ble: not connected to device")
	ErrAlreadyConnected = errors.New("ble: already connected to a device")
	ErrDeviceNotFound   = errors.New("ble: device not found")
	ErrServiceNotFound  = errors.New("ble: required service not found")
	ErrBadResponse      = errors.New("ble: malformed system response")
)

// namePrefixes lists the advertised name prefixes of known GiiKER
// hardware revisions, plus the Xiaomi-branded variant's full prefix.
var namePrefixes = []string{"GiC", "GiS", "GiY", "GiV", "Gi-", "Mi Smart Magic Cube"}

// IsCubeName reports whether an advertised device name looks like a
// GiiKER cube.
func IsCubeName(name string) bool {
	for _, prefix := range namePrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// ParseBattery decodes a battery response: [0xB5, percent].
func ParseBattery(payload []byte) (int, error) {
	if len(payload) < 2 || payload[0] != CmdRequestBattery {
		return 0, fmt.Errorf("%w: % X", ErrBadResponse, payload)
	}
	level := int(payload[1])
	if level > 100 {
		return 0, fmt.Errorf("%w: battery level %d", ErrBadResponse, level)
	}
	return level, nil
}

// ParseMoveCount decodes a lifetime move counter response:
// [0xCC, big-endian uint32].
func ParseMoveCount(payload []byte) (uint32, error) {
	if len(payload) < 5 || payload[0] != CmdRequestMoveCount {
		return 0, fmt.Errorf("%w: % X", ErrBadResponse, payload)
	}
	return binary.BigEndian.Uint32(payload[1:5]), nil
}
