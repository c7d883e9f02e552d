// BLE Debug Scanner - scans for all BLE devices to help identify a GiiKER cube
package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"tinygo.org/x/bluetooth"
)

// GiiKER state service UUID
var giikerServiceUUID = bluetooth.New16BitUUID(0xAADB)

func main() {
	fmt.Println("BLE Debug Scanner for GiiKER")
	fmt.Println("============================")
	fmt.Println()
	fmt.Println("IMPORTANT: Disconnect the cube from your phone first!")
	fmt.Println("  Phone Settings > Bluetooth > Gi... > Forget This Device")
	fmt.Println()
	fmt.Println("Then rotate the cube to wake it up.")
	fmt.Println()
	fmt.Println("Press Ctrl+C to stop scanning...")
	fmt.Println()

	adapter := bluetooth.DefaultAdapter
	err := adapter.Enable()
	if err != nil {
		fmt.Printf("ERROR: Failed to enable Bluetooth adapter: %v\n", err)
		fmt.Println()
		fmt.Println("Try: System Settings > Privacy & Security > Bluetooth")
		fmt.Println("     Add Terminal (or your terminal app) to the allowed list")
		os.Exit(1)
	}

	fmt.Println("Bluetooth adapter enabled. Scanning for 60 seconds...")
	fmt.Println()
	fmt.Printf("%-40s %-25s %-6s %s\n", "ADDRESS/UUID", "NAME", "RSSI", "NOTES")
	fmt.Println(strings.Repeat("-", 90))

	seen := make(map[string]bool)
	foundCube := false

	// Handle Ctrl+C
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println()
		printSummary(foundCube)
		adapter.StopScan()
		os.Exit(0)
	}()

	// Stop after 60 seconds
	go func() {
		time.Sleep(60 * time.Second)
		fmt.Println()
		fmt.Println("Scan timeout (60s).")
		printSummary(foundCube)
		adapter.StopScan()
		os.Exit(0)
	}()

	err = adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
		addr := result.Address.String()

		// Skip duplicates
		if seen[addr] {
			return
		}
		seen[addr] = true

		name := result.LocalName()
		notes := ""

		// Check for a GiiKER by name. The firmware advertises names like
		// "Gi2_A1B2" or "GiS_i3_C3D4"; older units use "Mi Smart Magic Cube".
		if strings.HasPrefix(name, "Gi") || strings.HasPrefix(name, "Mi Smart") {
			notes = "*** GIIKER FOUND! ***"
			foundCube = true
		} else if strings.Contains(strings.ToLower(name), "cube") {
			notes = "(cube-like name)"
		}

		// Check for a GiiKER by service UUID
		for _, uuid := range result.AdvertisementPayload.ServiceUUIDs() {
			if uuid == giikerServiceUUID {
				notes = "*** GIIKER (by UUID)! ***"
				foundCube = true
			}
		}

		if name == "" {
			name = "(no name)"
		}

		// Only show named devices or potential cubes to reduce noise
		if name != "(no name)" || notes != "" {
			fmt.Printf("%-40s %-25s %-6d %s\n", addr, truncate(name, 25), result.RSSI, notes)
		}
	})

	if err != nil {
		fmt.Printf("ERROR: Scan failed: %v\n", err)
		os.Exit(1)
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func printSummary(found bool) {
	fmt.Println()
	if found {
		fmt.Println("SUCCESS: a GiiKER cube was detected!")
		fmt.Println()
		fmt.Println("Now run: ./giiker state")
	} else {
		fmt.Println("No GiiKER cube was detected.")
		fmt.Println()
		fmt.Println("Troubleshooting:")
		fmt.Println("  1. Make sure the cube is NOT connected to your phone")
		fmt.Println("     (Forget the device in the phone's Bluetooth settings)")
		fmt.Println("  2. Rotate the cube to wake it up")
		fmt.Println("  3. Try moving closer to your machine")
		fmt.Println("  4. Try: sudo ./ble-debug")
	}
}
