package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	giiker "github.com/SeamusWaldron/giiker_ble_library"
	"github.com/SeamusWaldron/giiker_ble_library/internal/store"
)

var scanTimeout time.Duration

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for GiiKER cubes",
	Long: `Scan for nearby GiiKER cubes over Bluetooth Low Energy and record
them in the device registry.

A sleeping cube does not advertise; turn any face to wake it up, and
make sure it is not connected to a phone app.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 5*time.Second, "How long to scan")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	fmt.Println("Scanning for GiiKER cubes...")

	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout+time.Second)
	defer cancel()

	devices, err := giiker.Scan(ctx, scanTimeout)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(devices) == 0 {
		fmt.Println("No cubes found.")
		fmt.Println()
		fmt.Println("To fix this:")
		fmt.Println("  1. Rotate your cube to wake it up")
		fmt.Println("  2. Make sure it's not connected to your phone")
		fmt.Println("  3. Run this command again")
		return nil
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	registry := store.NewDeviceRepository(db)

	fmt.Printf("%-20s %-24s %s\n", "NAME", "ADDRESS", "RSSI")
	for _, d := range devices {
		fmt.Printf("%-20s %-24s %d\n", d.Name, d.Address, d.RSSI)
		if err := registry.Upsert(d.Address, d.Name, int(d.RSSI)); err != nil {
			return err
		}
	}

	fmt.Printf("\n%d cube(s) recorded in the registry.\n", len(devices))
	return nil
}
