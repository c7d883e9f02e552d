// BLE State Debug - reads and displays the raw cube state
package main

import (
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

func main() {
	fmt.Println("BLE State Debug")
	fmt.Println("================")
	fmt.Println()
	fmt.Println("This tool reads the cube state characteristic and breaks the")
	fmt.Println("frame down nibble by nibble. Start with the cube SOLVED so the")
	fmt.Println("permutation bytes are easy to recognize, then scramble it.")
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

	time.Sleep(100 * time.Millisecond)
	fmt.Printf("Found: %s\n", targetName)

	fmt.Println("Connecting...")
	device, err := adapter.Connect(targetAddr, bluetooth.ConnectionParams{})
	if err != nil {
		fmt.Printf("Failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer device.Disconnect()

	// Discover services
	services, err := device.DiscoverServices(nil)
	if err != nil {
		fmt.Printf("Failed to discover services: %v\n", err)
		os.Exit(1)
	}

	var stateService bluetooth.DeviceService
	for _, svc := range services {
		if strings.Contains(strings.ToLower(svc.UUID().String()), "aadb") {
			stateService = svc
			break
		}
	}

	chars, err := stateService.DiscoverCharacteristics(nil)
	if err != nil {
		fmt.Printf("Failed to discover characteristics: %v\n", err)
		os.Exit(1)
	}

	var stateChar bluetooth.DeviceCharacteristic
	for _, ch := range chars {
		if strings.Contains(strings.ToLower(ch.UUID().String()), "aadc") {
			stateChar = ch
		}
	}

	fmt.Println("Connected!")
	fmt.Println()

	// Live frames arrive as notifications whenever a face turns
	err = stateChar.EnableNotifications(func(data []byte) {
		fmt.Println("[NOTIFY]")
		dumpFrame(data)
	})
	if err != nil {
		fmt.Printf("Failed to enable notifications: %v\n", err)
		os.Exit(1)
	}

	// The state characteristic also supports a direct read, so the
	// current state is available without waiting for a turn.
	readState := func() {
		buf := make([]byte, 32)
		n, err := stateChar.Read(buf)
		if err != nil {
			fmt.Printf("Failed to read state: %v\n", err)
			return
		}
		fmt.Println("[READ]")
		dumpFrame(buf[:n])
	}

	fmt.Println("Reading cube state...")
	readState()

	fmt.Println()
	fmt.Println("Listening for frames... (rotate the cube to see moves)")
	fmt.Println("Press 'r' + Enter to read the state again")
	fmt.Println("Press Ctrl+C to exit")
	fmt.Println()

	// Handle Ctrl+C
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Input goroutine
	go func() {
		var input string
		for {
			fmt.Scanln(&input)
			if strings.ToLower(input) == "r" {
				readState()
			}
		}
	}()

	<-sigChan
	fmt.Println("\nDisconnecting...")
}

// dumpFrame prints a raw telemetry frame with each field decoded.
// Layout: bytes 0-3 corner permutation, 4-7 corner orientations,
// 8-13 edge permutation, 14-15 edge orientation bits, 16+ move log.
func dumpFrame(data []byte) {
	fmt.Printf("  Hex: %s (%d bytes)\n", hex.EncodeToString(data), len(data))
	if len(data) < 16 {
		fmt.Println("  (too short for a state frame)")
		return
	}

	var nib []byte
	for _, b := range data[:14] {
		nib = append(nib, b>>4, b&0x0F)
	}

	fmt.Printf("  Corner perm:   %v\n", nib[0:8])
	fmt.Printf("  Corner orient: %v\n", nib[8:16])
	fmt.Printf("  Edge perm:     %v\n", nib[16:28])
	fmt.Printf("  Edge flips:    %08b %04b\n", data[14], data[15]>>4)

	if len(data) > 16 {
		faces := []string{"", "B", "D", "L", "U", "R", "F"}
		turns := map[byte]string{1: "", 2: "2", 3: "'", 9: "2'"}
		var moves []string
		for _, b := range data[16:] {
			face := b >> 4
			turn, ok := turns[b&0x0F]
			if int(face) >= len(faces) || face == 0 || !ok {
				moves = append(moves, fmt.Sprintf("?%02X", b))
				continue
			}
			moves = append(moves, faces[face]+turn)
		}
		fmt.Printf("  Move log:      %s\n", strings.Join(moves, " "))
	}
}
