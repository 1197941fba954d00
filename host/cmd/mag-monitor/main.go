package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"magreader/host/monitor"
	"magreader/host/serial"
)

var (
	device  = flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud    = flag.Int("baud", 115200, "Console baud rate")
	count   = flag.Int("count", 0, "Stop after this many samples (0 = run until interrupted)")
	timeout = flag.Int("read-timeout", 500, "Serial read timeout in milliseconds")
)

func main() {
	flag.Parse()

	fmt.Println("Magnetometer Monitor")
	fmt.Println("====================")

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud
	cfg.ReadTimeout = *timeout

	fmt.Printf("Opening %s at %d baud...\n", cfg.Device, cfg.Baud)
	port, err := serial.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	// Start from the next complete line rather than stale buffered text
	if err := port.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: flush failed: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := monitor.New(os.Stdout)
	if err := m.Run(ctx, port, *count); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading console: %v\n", err)
	}

	fmt.Println()
	fmt.Println(m.Summary)
}
