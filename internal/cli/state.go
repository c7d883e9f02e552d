package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	giiker "github.com/SeamusWaldron/giiker_ble_library"
	"github.com/SeamusWaldron/giiker_ble_library/internal/store"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Read and display the cube's current state",
	Long: `Connect to a cube, read its current state, and print the facelet
string together with a colored net. The snapshot is recorded in the
database.`,
	RunE: runState,
}

func init() {
	rootCmd.AddCommand(stateCmd)
}

// connectCube connects to the cube selected by --device, or to the
// first cube found when the flag is empty.
func connectCube(ctx context.Context) (*giiker.Cube, error) {
	opts := []giiker.Option{giiker.WithLogger(newLogger())}

	var cube *giiker.Cube
	var err error
	if deviceAddr == "" {
		fmt.Println("Scanning for GiiKER cubes...")
		cube, err = giiker.ConnectFirst(ctx, opts...)
	} else {
		cube, err = giiker.Connect(ctx, giiker.Device{Address: deviceAddr}, opts...)
	}
	if err != nil {
		return nil, err
	}

	fmt.Printf("Connected: %s\n", cube.DeviceName())
	return cube, nil
}

func runState(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cube, err := connectCube(ctx)
	if err != nil {
		return err
	}
	defer cube.Close()

	facelets, err := cube.Facelets()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(RenderNet(facelets))
	fmt.Printf("Facelets: %s\n", facelets)
	if cube.IsSolved() {
		fmt.Println("The cube is solved.")
	}

	// Battery and move count are best-effort extras on the snapshot.
	var battery *int
	if level, err := cube.Battery(ctx); err == nil {
		battery = &level
	}
	var moveCount *int64
	if count, err := cube.MoveCount(ctx); err == nil {
		mc := int64(count)
		moveCount = &mc
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	device := cube.Device()
	if err := store.NewDeviceRepository(db).Upsert(device.Address, cube.DeviceName(), int(device.RSSI)); err != nil {
		return err
	}
	return store.NewSnapshotRepository(db).Save(device.Address, facelets, cube.IsSolved(), battery, moveCount)
}
