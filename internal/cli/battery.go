package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var batteryCmd = &cobra.Command{
	Use:   "battery",
	Short: "Query the cube's battery level",
	RunE:  runBattery,
}

func init() {
	rootCmd.AddCommand(batteryCmd)
}

func runBattery(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cube, err := connectCube(ctx)
	if err != nil {
		return err
	}
	defer cube.Close()

	level, err := cube.Battery(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Battery: %d%%\n", level)
	return nil
}
