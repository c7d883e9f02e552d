// BLE Raw Data Debug - shows raw data from a GiiKER cube
package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"tinygo.org/x/bluetooth"
)

// GiiKER UUIDs
var (
	stateServiceUUIDStr = "0000aadb-0000-1000-8000-00805f9b34fb"
	stateCharUUIDStr    = "0000aadc-0000-1000-8000-00805f9b34fb" // Notify (cube -> us)
	sysServiceUUIDStr   = "0000aaaa-0000-1000-8000-00805f9b34fb"
	sysReadUUIDStr      = "0000aaab-0000-1000-8000-00805f9b34fb" // Notify (responses)
	sysWriteUUIDStr     = "0000aaac-0000-1000-8000-00805f9b34fb" // Write (requests)
)

func main() {
	fmt.Println("BLE Raw Data Debug (Detailed)")
	fmt.Println("==============================")
	fmt.Println()

	adapter := bluetooth.DefaultAdapter
	err := adapter.Enable()
	if err != nil {
		fmt.Printf("Failed to enable adapter: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Scanning for GiiKER cube...")

	var targetAddr bluetooth.Address
	var targetName string
	found := make(chan struct{})
	var foundOnce sync.Once

	go func() {
		adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
			name := result.LocalName()
			if strings.HasPrefix(name, "Gi") || strings.HasPrefix(name, "Mi Smart") {
				targetAddr = result.Address
				targetName = name
				foundOnce.Do(func() {
					close(found)
				})
			}
		})
	}()

	select {
	case <-found:
		adapter.StopScan()
	case <-time.After(10 * time.Second):
		adapter.StopScan()
		fmt.Println("GiiKER cube not found")
		os.Exit(1)
	}

	// Give time for StopScan to take effect
	time.Sleep(100 * time.Millisecond)

	fmt.Printf("Found: %s (%s)\n", targetName, targetAddr.String())
	fmt.Println()

	fmt.Println("Connecting...")
	device, err := adapter.Connect(targetAddr, bluetooth.ConnectionParams{})
	if err != nil {
		fmt.Printf("Failed to connect: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Connected!")
	fmt.Println()

	// Discover ALL services
	fmt.Println("Discovering services...")
	services, err := device.DiscoverServices(nil)
	if err != nil {
		fmt.Printf("Failed to discover services: %v\n", err)
		device.Disconnect()
		os.Exit(1)
	}

	fmt.Printf("Found %d services:\n", len(services))
	for i, svc := range services {
		fmt.Printf("  [%d] %s\n", i, svc.UUID().String())
	}
	fmt.Println()

	// Find the state and system services
	var stateService, sysService bluetooth.DeviceService
	for _, svc := range services {
		uuidStr := strings.ToLower(svc.UUID().String())
		if strings.Contains(uuidStr, "aadb") {
			stateService = svc
			fmt.Printf("Found state service: %s\n", svc.UUID().String())
		}
		if strings.Contains(uuidStr, "0000aaaa") {
			sysService = svc
			fmt.Printf("Found system service: %s\n", svc.UUID().String())
		}
	}

	if stateService.UUID().String() == "00000000-0000-0000-0000-000000000000" {
		fmt.Println("State service not found!")
		device.Disconnect()
		os.Exit(1)
	}

	// Discover state characteristics
	fmt.Println()
	fmt.Println("Discovering state characteristics...")
	chars, err := stateService.DiscoverCharacteristics(nil)
	if err != nil {
		fmt.Printf("Failed to discover characteristics: %v\n", err)
		device.Disconnect()
		os.Exit(1)
	}

	fmt.Printf("Found %d characteristics:\n", len(chars))
	var stateChar bluetooth.DeviceCharacteristic
	for i, ch := range chars {
		uuidStr := strings.ToLower(ch.UUID().String())
		fmt.Printf("  [%d] %s\n", i, ch.UUID().String())

		if strings.Contains(uuidStr, "aadc") {
			stateChar = ch
			fmt.Printf("       ^ This is the state characteristic (notify)\n")
		}
	}
	fmt.Println()

	if stateChar.UUID().String() == "00000000-0000-0000-0000-000000000000" {
		fmt.Println("State characteristic not found!")
		device.Disconnect()
		os.Exit(1)
	}

	// Enable notifications on the state characteristic
	fmt.Println("Enabling notifications on state characteristic...")
	err = stateChar.EnableNotifications(func(data []byte) {
		fmt.Printf("[STATE] %s\n", hex.EncodeToString(data))

		// Try to parse as a GiiKER state frame
		if len(data) >= 17 {
			face := data[16] >> 4
			turn := data[16] & 0x0F
			fmt.Printf("        Last move: face=0x%X turn=0x%X\n", face, turn)
		}
	})
	if err != nil {
		fmt.Printf("Failed to enable notifications: %v\n", err)
		device.Disconnect()
		os.Exit(1)
	}
	fmt.Println("Notifications enabled!")
	fmt.Println()

	// System channel: subscribe to responses and ask for the battery level
	if sysService.UUID().String() != "00000000-0000-0000-0000-000000000000" {
		sysChars, err := sysService.DiscoverCharacteristics(nil)
		if err == nil {
			var sysRead, sysWrite bluetooth.DeviceCharacteristic
			for _, ch := range sysChars {
				uuidStr := strings.ToLower(ch.UUID().String())
				if strings.Contains(uuidStr, "aaab") {
					sysRead = ch
				}
				if strings.Contains(uuidStr, "aaac") {
					sysWrite = ch
				}
			}
			if sysRead.UUID().String() != "00000000-0000-0000-0000-000000000000" {
				err = sysRead.EnableNotifications(func(data []byte) {
					fmt.Printf("[SYS]   %s\n", hex.EncodeToString(data))
					if len(data) >= 2 && data[0] == 0xB5 {
						fmt.Printf("        Battery: %d%%\n", data[1])
					}
				})
				if err != nil {
					fmt.Printf("Failed to enable system notifications: %v\n", err)
				}
			}
			if sysWrite.UUID().String() != "00000000-0000-0000-0000-000000000000" {
				fmt.Println("Requesting battery level (0xB5)...")
				if _, err := sysWrite.WriteWithoutResponse([]byte{0xB5}); err != nil {
					if _, err := sysWrite.Write([]byte{0xB5}); err != nil {
						fmt.Printf("Failed to send battery request: %v\n", err)
					}
				}
			}
		}
	}
	fmt.Println()

	fmt.Println("Rotate the cube to see data...")
	fmt.Println("Press Ctrl+C to exit")
	fmt.Println()

	// Handle Ctrl+C
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Keep running
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	select {
	case <-sigChan:
		fmt.Println("\nDisconnecting...")
	case <-ctx.Done():
		fmt.Println("\nTimeout, disconnecting...")
	}

	device.Disconnect()
}
