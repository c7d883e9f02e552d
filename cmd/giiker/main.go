// GiiKER Smart Cube Tool - CLI application for reading and tracking GiiKER smart cubes.
package main

import (
	"github.com/SeamusWaldron/giiker_ble_library/internal/cli"
)

func main() {
	cli.Execute()
}
