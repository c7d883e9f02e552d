package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/giiker_ble_library/internal/store"
)

var sessionsLimit int

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List recent connection sessions",
	Long: `List recent watch sessions for a cube, newest first. Without --device
the most recently seen cube in the registry is used.`,
	RunE: runSessions,
}

func init() {
	sessionsCmd.Flags().IntVar(&sessionsLimit, "limit", 10, "Maximum sessions to show")
	rootCmd.AddCommand(sessionsCmd)
}

func runSessions(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	address := deviceAddr
	if address == "" {
		devices, err := store.NewDeviceRepository(db).List()
		if err != nil {
			return err
		}
		if len(devices) == 0 {
			fmt.Println("No cubes in the registry yet. Run 'giiker scan' first.")
			return nil
		}
		address = devices[0].Address
	}

	sessions, err := store.NewSessionRepository(db).Recent(address, sessionsLimit)
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		fmt.Printf("No sessions recorded for %s.\n", address)
		return nil
	}

	fmt.Printf("Sessions for %s:\n\n", address)
	fmt.Printf("%-21s %-10s %s\n", "STARTED", "DURATION", "BATTERY")
	for _, s := range sessions {
		started := time.UnixMilli(s.StartedAtMs).Format("2006-01-02 15:04:05")

		duration := "open"
		if s.EndedAtMs != nil {
			d := time.Duration(*s.EndedAtMs-s.StartedAtMs) * time.Millisecond
			duration = d.Round(time.Second).String()
		}

		battery := "-"
		if s.BatteryStart != nil {
			battery = fmt.Sprintf("%d%%", *s.BatteryStart)
			if s.BatteryEnd != nil {
				battery = fmt.Sprintf("%d%% -> %d%%", *s.BatteryStart, *s.BatteryEnd)
			}
		}

		fmt.Printf("%-21s %-10s %s\n", started, duration, battery)
	}

	return nil
}
