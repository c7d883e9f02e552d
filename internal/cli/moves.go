package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var movesCmd = &cobra.Command{
	Use:   "moves",
	Short: "Query the cube's lifetime move counter",
	RunE:  runMoves,
}

func init() {
	rootCmd.AddCommand(movesCmd)
}

func runMoves(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cube, err := connectCube(ctx)
	if err != nil {
		return err
	}
	defer cube.Close()

	count, err := cube.MoveCount(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Lifetime moves: %d\n", count)
	return nil
}
