package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var resetCustom bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the cube's reference state",
	Long: `Tell the cube to treat its current physical arrangement as solved.
With --custom the cube re-calibrates against its custom reference
pattern instead.

Use this when the cube's reported state has drifted from reality, for
example after changing batteries mid-scramble.`,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&resetCustom, "custom", false, "Reset to the custom reference pattern")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cube, err := connectCube(ctx)
	if err != nil {
		return err
	}
	defer cube.Close()

	if resetCustom {
		if err := cube.ResetCustom(); err != nil {
			return err
		}
		fmt.Println("Cube reset to its custom reference pattern.")
		return nil
	}

	if err := cube.ResetSolved(); err != nil {
		return err
	}
	fmt.Println("Cube reset: the current arrangement now reads as solved.")
	return nil
}
