package ble

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"tinygo.org/x/bluetooth"
)

// Characteristic UUIDs used during discovery.
var (
	stateServiceUUID  = bluetooth.New16BitUUID(StateServiceID)
	stateCharUUID     = bluetooth.New16BitUUID(StateCharID)
	systemServiceUUID = bluetooth.New16BitUUID(SystemServiceID)
	systemReadUUID    = bluetooth.New16BitUUID(SystemReadID)
	systemWriteUUID   = bluetooth.New16BitUUID(SystemWriteID)
)

// ScanResult represents a discovered GiiKER cube.
type ScanResult struct {
	Name    string
	Address string
	RSSI    int16

	addr bluetooth.Address
}

// Client manages the BLE connection to a GiiKER cube.
type Client struct {
	adapter     *bluetooth.Adapter
	device      bluetooth.Device
	stateChar   bluetooth.DeviceCharacteristic
	sysRead     bluetooth.DeviceCharacteristic
	sysWrite    bluetooth.DeviceCharacteristic
	logger      *slog.Logger
	handlerOnce sync.Once

	mu           sync.RWMutex
	connected    bool
	deviceName   string
	deviceAddr   string
	onState      func([]byte)
	onSystem     func([]byte)
	onDisconnect func()
}

// NewClient creates a new BLE client for GiiKER communication.
// A nil logger falls back to slog.Default().
func NewClient(logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("failed to enable BLE adapter: %w", err)
	}

	return &Client{
		adapter: adapter,
		logger:  logger,
	}, nil
}

// SetStateCallback sets the callback for state characteristic
// notifications (raw telemetry frames).
func (c *Client) SetStateCallback(cb func([]byte)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onState = cb
}

// SetSystemCallback sets the callback for system characteristic
// notifications (command responses).
func (c *Client) SetSystemCallback(cb func([]byte)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onSystem = cb
}

// SetDisconnectCallback sets the callback for disconnection events.
func (c *Client) SetDisconnectCallback(cb func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onDisconnect = cb
}

// Scan scans for GiiKER cubes until the timeout elapses or the context
// is cancelled.
func (c *Client) Scan(ctx context.Context, timeout time.Duration) ([]ScanResult, error) {
	c.mu.RLock()
	if c.connected {
		c.mu.RUnlock()
		return nil, ErrAlreadyConnected
	}
	c.mu.RUnlock()

	var results []ScanResult
	var mu sync.Mutex
	seen := make(map[string]bool)

	done := make(chan struct{})

	go func() {
		c.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
			name := result.LocalName()
			addr := result.Address.String()

			mu.Lock()
			if seen[addr] {
				mu.Unlock()
				return
			}
			seen[addr] = true
			mu.Unlock()

			if !IsCubeName(name) {
				return
			}

			c.logger.Debug("found cube",
				slog.String("name", name),
				slog.String("address", addr),
				slog.Int("rssi", int(result.RSSI)))

			mu.Lock()
			results = append(results, ScanResult{
				Name:    name,
				Address: addr,
				RSSI:    result.RSSI,
				addr:    result.Address,
			})
			mu.Unlock()
		})
		close(done)
	}()

	select {
	case <-time.After(timeout):
	case <-ctx.Done():
	}

	c.adapter.StopScan()
	<-done

	return results, nil
}

// Connect connects to a GiiKER cube by BLE address. It scans until the
// address is seen, then establishes the connection.
func (c *Client) Connect(ctx context.Context, address string) error {
	c.mu.Lock()
	if c.connected {
		c.mu.Unlock()
		return ErrAlreadyConnected
	}
	c.mu.Unlock()

	var target ScanResult
	found := make(chan struct{})
	var foundOnce sync.Once

	go func() {
		c.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
			if result.Address.String() == address {
				foundOnce.Do(func() {
					target = ScanResult{
						Name:    result.LocalName(),
						Address: address,
						RSSI:    result.RSSI,
						addr:    result.Address,
					}
					close(found)
				})
			}
		})
	}()

	select {
	case <-found:
		c.adapter.StopScan()
	case <-time.After(10 * time.Second):
		c.adapter.StopScan()
		return ErrDeviceNotFound
	case <-ctx.Done():
		c.adapter.StopScan()
		return ctx.Err()
	}

	return c.ConnectToResult(ctx, target)
}

// ConnectToResult connects directly to a device from a scan result.
func (c *Client) ConnectToResult(ctx context.Context, result ScanResult) error {
	c.mu.Lock()
	if c.connected {
		c.mu.Unlock()
		return ErrAlreadyConnected
	}
	c.mu.Unlock()

	// Fire the disconnect callback when the link drops. The handler is
	// adapter-global and registered once per client.
	c.handlerOnce.Do(func() {
		c.adapter.SetConnectHandler(func(device bluetooth.Device, connected bool) {
			if connected {
				return
			}

			c.mu.Lock()
			wasConnected := c.connected
			c.connected = false
			cb := c.onDisconnect
			c.mu.Unlock()

			if wasConnected && cb != nil {
				cb()
			}
		})
	})

	device, err := c.adapter.Connect(result.addr, bluetooth.ConnectionParams{})
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	if err := c.discover(device); err != nil {
		device.Disconnect()
		return err
	}

	c.mu.Lock()
	c.device = device
	c.connected = true
	c.deviceName = result.Name
	c.deviceAddr = result.Address
	c.mu.Unlock()

	c.logger.Info("connected",
		slog.String("name", result.Name),
		slog.String("address", result.Address))

	return nil
}

// discover resolves both services and their characteristics and enables
// notifications on the state and system read characteristics.
func (c *Client) discover(device bluetooth.Device) error {
	services, err := device.DiscoverServices([]bluetooth.UUID{stateServiceUUID, systemServiceUUID})
	if err != nil {
		return fmt.Errorf("failed to discover services: %w", err)
	}

	var stateService, systemService bluetooth.DeviceService
	var haveState, haveSystem bool
	for _, svc := range services {
		switch svc.UUID() {
		case stateServiceUUID:
			stateService = svc
			haveState = true
		case systemServiceUUID:
			systemService = svc
			haveSystem = true
		}
	}
	if !haveState || !haveSystem {
		return fmt.Errorf("%w: state=%v system=%v", ErrServiceNotFound, haveState, haveSystem)
	}

	stateChars, err := stateService.DiscoverCharacteristics([]bluetooth.UUID{stateCharUUID})
	if err != nil || len(stateChars) == 0 {
		return fmt.Errorf("failed to discover state characteristic: %w", err)
	}
	c.stateChar = stateChars[0]

	sysChars, err := systemService.DiscoverCharacteristics([]bluetooth.UUID{systemReadUUID, systemWriteUUID})
	if err != nil {
		return fmt.Errorf("failed to discover system characteristics: %w", err)
	}
	var haveRead, haveWrite bool
	for _, ch := range sysChars {
		switch ch.UUID() {
		case systemReadUUID:
			c.sysRead = ch
			haveRead = true
		case systemWriteUUID:
			c.sysWrite = ch
			haveWrite = true
		}
	}
	if !haveRead || !haveWrite {
		return fmt.Errorf("%w: system read=%v write=%v", ErrServiceNotFound, haveRead, haveWrite)
	}

	if err := c.stateChar.EnableNotifications(c.handleStateNotification); err != nil {
		return fmt.Errorf("failed to enable state notifications: %w", err)
	}
	if err := c.sysRead.EnableNotifications(c.handleSystemNotification); err != nil {
		return fmt.Errorf("failed to enable system notifications: %w", err)
	}

	return nil
}

// Disconnect disconnects from the current device.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return nil
	}

	err := c.device.Disconnect()
	c.connected = false
	c.deviceName = ""
	c.deviceAddr = ""

	return err
}

// IsConnected returns true if connected to a device.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// DeviceName returns the connected device name.
func (c *Client) DeviceName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.deviceName
}

// DeviceAddress returns the connected device address.
func (c *Client) DeviceAddress() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.deviceAddr
}

// ReadState reads the state characteristic directly, returning a raw
// telemetry frame without waiting for a turn.
func (c *Client) ReadState() ([]byte, error) {
	c.mu.RLock()
	if !c.connected {
		c.mu.RUnlock()
		return nil, ErrNotConnected
	}
	ch := c.stateChar
	c.mu.RUnlock()

	buf := make([]byte, 32)
	n, err := ch.Read(buf)
	if err != nil {
		return nil, fmt.Errorf("state read failed: %w", err)
	}
	return buf[:n], nil
}

// WriteCommand writes a single-byte command to the system write
// characteristic. The response arrives on the system read
// characteristic.
func (c *Client) WriteCommand(code byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.connected {
		return ErrNotConnected
	}

	data := []byte{code}
	_, err := c.sysWrite.WriteWithoutResponse(data)
	if err != nil {
		_, err = c.sysWrite.Write(data)
	}
	return err
}

// handleStateNotification handles incoming state notifications.
func (c *Client) handleStateNotification(data []byte) {
	c.logger.Debug("state notification", slog.Int("len", len(data)))

	c.mu.RLock()
	cb := c.onState
	c.mu.RUnlock()

	if cb != nil {
		cb(data)
	}
}

// handleSystemNotification handles incoming system responses.
func (c *Client) handleSystemNotification(data []byte) {
	c.logger.Debug("system notification", slog.Int("len", len(data)))

	c.mu.RLock()
	cb := c.onSystem
	c.mu.RUnlock()

	if cb != nil {
		cb(data)
	}
}
