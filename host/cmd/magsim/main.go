package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"

	"magreader/config"
	"magreader/core"
	"magreader/sim"
)

var (
	configPath = flag.String("config", "", "JSON board description (default: micro:bit v1)")
	ticks      = flag.Int("ticks", 0, "Stop after this many ticks (0 = run until interrupted)")
	failEvery  = flag.Int("fail-every", 0, "Fail every n-th sensor read (0 = never)")
	blockEvery = flag.Int("block-every", 0, "Report a full UART buffer every n-th byte (0 = never)")
	debug      = flag.Bool("debug", false, "Print debug output and a drop report on exit")
	dumpConfig = flag.Bool("dump-config", false, "Print the default board description and exit")
)

func main() {
	flag.Parse()

	if *dumpConfig {
		data, err := config.DefaultJSON()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
		return
	}

	cfg := core.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.LoadFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = *loaded
	}

	core.SetDebugWriter(func(s string) { fmt.Fprintln(os.Stderr, s) })
	core.SetDebugEnabled(*debug)

	board := sim.NewBoard(os.Stdout)
	board.Console.BlockEvery = *blockEvery
	board.Sensor.FailEvery = *failEvery
	board.Sensor.Field = rotatingField

	if err := core.RegisterTickHandler(core.Peripherals.Tick); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := core.Peripherals.Initialize(board.Platform(), cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: initialize: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := board.Run(ctx, *ticks, nil); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	if *debug {
		core.DebugPrintln("[STATS] " + core.Peripherals.Stats().Report())
		core.Peripherals.DumpDrops()
	}
}

// rotatingField is a board turning slowly in a horizontal field of about
// 500 counts, with a constant vertical component.
func rotatingField(n int) (x, y, z int16) {
	a := float64(n) * math.Pi / 32
	return int16(500 * math.Cos(a)), int16(500 * math.Sin(a)), -300
}
