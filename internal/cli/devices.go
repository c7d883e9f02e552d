package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/giiker_ble_library/internal/store"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List known cubes",
	Long:  `List every cube recorded in the device registry, most recently seen first.`,
	RunE:  runDevices,
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}

func runDevices(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	devices, err := store.NewDeviceRepository(db).List()
	if err != nil {
		return err
	}

	if len(devices) == 0 {
		fmt.Println("No cubes in the registry yet. Run 'giiker scan' first.")
		return nil
	}

	snapshots := store.NewSnapshotRepository(db)

	fmt.Printf("%-20s %-24s %-6s %-21s %s\n", "NAME", "ADDRESS", "RSSI", "LAST SEEN", "STATE")
	for _, d := range devices {
		state := "-"
		if snap, err := snapshots.Get(d.Address); err == nil {
			if snap.Solved {
				state = "solved"
			} else {
				state = "scrambled"
			}
		}
		lastSeen := time.UnixMilli(d.LastSeenMs).Format("2006-01-02 15:04:05")
		fmt.Printf("%-20s %-24s %-6d %-21s %s\n", d.Name, d.Address, d.RSSI, lastSeen, state)
	}

	return nil
}
