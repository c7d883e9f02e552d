package ble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsCubeName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"GiC-a1b2", true},
		{"GiS_m3", true},
		{"GiY cube", true},
		{"GiV1", true},
		{"Gi-78AB", true},
		{"Mi Smart Magic Cube", true},
		{"GoCube_ABC", false},
		{"GAN-i3", false},
		{"gic-lower", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCubeName(tt.name))
		})
	}
}

func TestParseBattery(t *testing.T) {
	level, err := ParseBattery([]byte{CmdRequestBattery, 87})
	require.NoError(t, err)
	assert.Equal(t, 87, level)

	level, err = ParseBattery([]byte{CmdRequestBattery, 0})
	require.NoError(t, err)
	assert.Equal(t, 0, level)

	level, err = ParseBattery([]byte{CmdRequestBattery, 100})
	require.NoError(t, err)
	assert.Equal(t, 100, level)
}

func TestParseBatteryBadPayload(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"too short", []byte{CmdRequestBattery}},
		{"wrong code", []byte{CmdRequestMoveCount, 50}},
		{"over 100", []byte{CmdRequestBattery, 101}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBattery(tt.data)
			assert.ErrorIs(t, err, ErrBadResponse)
		})
	}
}

func TestParseMoveCount(t *testing.T) {
	count, err := ParseMoveCount([]byte{CmdRequestMoveCount, 0x00, 0x01, 0x02, 0x03})
	require.NoError(t, err)
	assert.Equal(t, uint32(0x00010203), count)

	count, err = ParseMoveCount([]byte{CmdRequestMoveCount, 0, 0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, uint32(0), count)

	// Trailing bytes beyond the counter are ignored.
	count, err = ParseMoveCount([]byte{CmdRequestMoveCount, 0xFF, 0xFF, 0xFF, 0xFF, 0xAA})
	require.NoError(t, err)
	assert.Equal(t, uint32(0xFFFFFFFF), count)
}

func TestParseMoveCountBadPayload(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"too short", []byte{CmdRequestMoveCount, 0x00, 0x01}},
		{"wrong code", []byte{CmdRequestBattery, 0, 0, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMoveCount(tt.data)
			assert.ErrorIs(t, err, ErrBadResponse)
		})
	}
}
