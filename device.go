package giiker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SeamusWaldron/giiker_ble_library/internal/ble"
)

// Device represents a discovered GiiKER cube.
// Devices are returned by the Scan function and can be passed to Connect.
type Device struct {
	Name    string // Advertised name (e.g., "GiC-a3f2")
	Address string // BLE address used for connection
	RSSI    int16  // Signal strength in dBm
}

// Cube represents a connected GiiKER smart cube.
// It wraps the BLE connection and provides a clean callback-based API.
//
// Create a Cube using Connect or ConnectFirst:
//
//	cube, err := giiker.ConnectFirst(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cube.Close()
//
//	cube.OnMove(func(m giiker.Move) {
//	    fmt.Println("Move:", m.Notation())
//	})
//
// The cube pushes its complete state after every turn, so the snapshot
// returned by State is always the device's own truth; nothing is
// simulated on this side. Connect performs an initial state read, so a
// snapshot is available before the first turn.
type Cube struct {
	client *ble.Client
	device Device
	config *config

	mu      sync.RWMutex
	state   CubeState
	solved  bool
	battery int
	pending map[byte]chan []byte

	// Callbacks
	onState      func(CubeState)
	onMove       func(Move)
	onBattery    func(int)
	onSolved     func()
	onDisconnect func(error)
}

// Scan discovers nearby GiiKER cubes via Bluetooth Low Energy.
// Returns all devices found within the timeout period.
//
// Typical usage:
//
//	devices, err := giiker.Scan(ctx, 5*time.Second)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, d := range devices {
//	    fmt.Printf("Found: %s (RSSI: %d)\n", d.Name, d.RSSI)
//	}
//
// Ensure the cube is awake (turn any face) and not connected to another
// host such as a phone app.
func Scan(ctx context.Context, timeout time.Duration) ([]Device, error) {
	client, err := ble.NewClient(slog.Default())
	if err != nil {
		return nil, err
	}
	defer client.Disconnect()

	results, err := client.Scan(ctx, timeout)
	if err != nil {
		return nil, err
	}

	devices := make([]Device, len(results))
	for i, r := range results {
		devices[i] = Device{
			Name:    r.Name,
			Address: r.Address,
			RSSI:    r.RSSI,
		}
	}

	return devices, nil
}

// Connect connects to a specific GiiKER cube.
func Connect(ctx context.Context, device Device, opts ...Option) (*Cube, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	client, err := ble.NewClient(cfg.logger)
	if err != nil {
		return nil, err
	}

	c := &Cube{
		client:  client,
		device:  device,
		config:  cfg,
		battery: -1,
		pending: make(map[byte]chan []byte),
	}

	// Set up callbacks before connecting so no notification is lost.
	client.SetStateCallback(c.handleState)
	client.SetSystemCallback(c.handleSystem)
	client.SetDisconnectCallback(c.handleDisconnect)

	if err := client.Connect(ctx, device.Address); err != nil {
		return nil, err
	}

	// The state characteristic is readable, so a snapshot is available
	// immediately rather than only after the first physical turn.
	raw, err := client.ReadState()
	if err != nil {
		client.Disconnect()
		return nil, err
	}
	frame, err := DecodeFrame(raw)
	if err != nil {
		client.Disconnect()
		return nil, fmt.Errorf("initial state read: %w", err)
	}
	c.applyFrame(frame, false)

	return c, nil
}

// ConnectFirst scans and connects to the first GiiKER cube found.
// This is a convenience function for quick prototyping and single-cube
// setups. For setups with multiple cubes, use Scan and Connect.
//
// Example:
//
//	cube, err := giiker.ConnectFirst(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cube.Close()
func ConnectFirst(ctx context.Context, opts ...Option) (*Cube, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	devices, err := Scan(ctx, cfg.scanTimeout)
	if err != nil {
		return nil, err
	}

	if len(devices) == 0 {
		return nil, ErrDeviceNotFound
	}

	return Connect(ctx, devices[0], opts...)
}

// Close disconnects from the cube and cleans up resources.
func (c *Cube) Close() error {
	return c.client.Disconnect()
}

// IsConnected returns true if still connected to the cube.
func (c *Cube) IsConnected() bool {
	return c.client.IsConnected()
}

// Device returns the device this cube was connected to.
func (c *Cube) Device() Device {
	return c.device
}

// DeviceName returns the connected device name.
func (c *Cube) DeviceName() string {
	return c.client.DeviceName()
}

// Event callbacks

// OnState sets a callback that fires with the full cube state for every
// telemetry frame.
func (c *Cube) OnState(cb func(CubeState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onState = cb
}

// OnMove sets a callback that fires for each move detected.
func (c *Cube) OnMove(cb func(Move)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onMove = cb
}

// OnBattery sets a callback for battery level updates.
func (c *Cube) OnBattery(cb func(int)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onBattery = cb
}

// OnSolved sets a callback that fires when the cube transitions into the
// solved state.
func (c *Cube) OnSolved(cb func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onSolved = cb
}

// OnDisconnect sets a callback for disconnection events.
func (c *Cube) OnDisconnect(cb func(error)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onDisconnect = cb
}

// State access

// State returns the most recent cube state.
func (c *Cube) State() CubeState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Projected returns the visible sticker colors of the current state.
func (c *Cube) Projected() (*ProjectedState, error) {
	return ProjectState(c.State())
}

// Facelets returns the 54-character facelet string of the current state.
func (c *Cube) Facelets() (string, error) {
	projected, err := c.Projected()
	if err != nil {
		return "", err
	}
	return projected.FaceletString(), nil
}

// IsSolved returns true if the cube is currently solved.
func (c *Cube) IsSolved() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.solved
}

// RequestState re-reads the state characteristic and refreshes the
// snapshot. Useful when no turns have happened for a while and the
// caller wants to confirm the connection is live.
func (c *Cube) RequestState() (CubeState, error) {
	raw, err := c.client.ReadState()
	if err != nil {
		return CubeState{}, err
	}
	frame, err := DecodeFrame(raw)
	if err != nil {
		return CubeState{}, err
	}
	c.applyFrame(frame, false)
	return frame.State, nil
}

// LastBattery returns the last battery level seen (0-100), or -1 if no
// battery response has arrived yet.
func (c *Cube) LastBattery() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.battery
}

// Queries

// Battery queries the cube's battery level (0-100).
func (c *Cube) Battery(ctx context.Context) (int, error) {
	payload, err := c.request(ctx, ble.CmdRequestBattery)
	if err != nil {
		return 0, err
	}
	return ble.ParseBattery(payload)
}

// MoveCount queries the cube's lifetime move counter.
func (c *Cube) MoveCount(ctx context.Context) (uint32, error) {
	payload, err := c.request(ctx, ble.CmdRequestMoveCount)
	if err != nil {
		return 0, err
	}
	return ble.ParseMoveCount(payload)
}

// Control

// ResetSolved tells the cube to treat its current physical arrangement
// as solved. The local snapshot is reset to match, since the cube sends
// no frame until the next turn.
func (c *Cube) ResetSolved() error {
	if err := c.client.WriteCommand(ble.CmdResetSolved); err != nil {
		return err
	}

	c.mu.Lock()
	c.state = SolvedState()
	c.solved = true
	c.mu.Unlock()

	return nil
}

// ResetCustom tells the cube to re-calibrate against its custom
// reference pattern. The next telemetry frame reflects the new
// reference.
func (c *Cube) ResetCustom() error {
	return c.client.WriteCommand(ble.CmdResetCustom)
}

// request writes a command code and waits for the matching system
// response. One request per code may be in flight at a time.
func (c *Cube) request(ctx context.Context, code byte) ([]byte, error) {
	ch := make(chan []byte, 1)

	c.mu.Lock()
	if _, exists := c.pending[code]; exists {
		c.mu.Unlock()
		return nil, ErrRequestPending
	}
	c.pending[code] = ch
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.pending, code)
		c.mu.Unlock()
	}()

	if err := c.client.WriteCommand(code); err != nil {
		return nil, err
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.requestTimeout)
		defer cancel()
	}

	select {
	case payload := <-ch:
		return payload, nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: command 0x%02X", ErrTimeout, code)
		}
		return nil, ctx.Err()
	}
}

// Internal notification handling

func (c *Cube) handleState(data []byte) {
	frame, err := DecodeFrame(data)
	if err != nil {
		c.config.logger.Debug("dropping undecodable state frame",
			slog.Int("len", len(data)),
			slog.Any("error", err))
		return
	}
	c.applyFrame(frame, true)
}

// applyFrame installs a decoded frame as the current snapshot and fires
// callbacks. Live notifications report their triggering move; initial
// and on-demand reads do not, since their move log is stale backlog.
func (c *Cube) applyFrame(frame *Frame, live bool) {
	solved := frame.State.IsSolved()

	c.mu.Lock()
	wasSolved := c.solved
	c.state = frame.State
	c.solved = solved
	stateCb := c.onState
	moveCb := c.onMove
	solvedCb := c.onSolved
	c.mu.Unlock()

	// Fire callbacks outside the lock
	if stateCb != nil {
		stateCb(frame.State)
	}
	if live && moveCb != nil && len(frame.Moves) > 0 {
		moveCb(frame.Moves[0])
	}
	if live && solved && !wasSolved && solvedCb != nil {
		solvedCb()
	}
}

func (c *Cube) handleSystem(data []byte) {
	if len(data) == 0 {
		return
	}

	c.mu.Lock()
	ch, waiting := c.pending[data[0]]
	if waiting {
		delete(c.pending, data[0])
	}
	c.mu.Unlock()

	if waiting {
		// The BLE stack reuses notification buffers, so hand off a copy.
		payload := make([]byte, len(data))
		copy(payload, data)
		ch <- payload
	}

	// Battery responses update the cache and callback whoever asked.
	if data[0] == ble.CmdRequestBattery {
		level, err := ble.ParseBattery(data)
		if err != nil {
			return
		}

		c.mu.Lock()
		c.battery = level
		cb := c.onBattery
		c.mu.Unlock()

		if cb != nil {
			cb(level)
		}
	}
}

func (c *Cube) handleDisconnect() {
	c.mu.RLock()
	cb := c.onDisconnect
	c.mu.RUnlock()

	if cb != nil {
		cb(ErrNotConnected)
	}
}
