// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Tidewater Robotics

package cmd

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.bug.st/serial"

	"github.com/tidewater-robotics/bollard/pkg/keel"
)

var sniffCmd = &cobra.Command{
	Use:   "sniff",
	Short: "Monitor and decode Keel traffic on a serial port",
	Long: `Attach to a serial port and print decoded Keel frames in human-readable
form as they arrive. Malformed bytes are reported and the decoder resyncs on
the next frame header.

Only serial links can be sniffed; point --port at the line between another
controller and the bench.`,
	RunE: runSniff,
}

func init() {
	rootCmd.AddCommand(sniffCmd)
}

func runSniff(cmd *cobra.Command, args []string) error {
	if portName == "" {
		return fmt.Errorf("sniff requires --port")
	}

	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(portName, mode)
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %v", portName, err)
	}
	defer port.Close()

	fmt.Printf("Bollard - Keel Protocol Monitor\n")
	fmt.Printf("Port: %s @ %d baud\n", portName, baudRate)
	fmt.Printf("Press Ctrl+C to exit\n\n")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		port.Close()
		os.Exit(0)
	}()

	decoder := keel.NewDecoder()
	buf := make([]byte, 128)

	for {
		n, err := port.Read(buf)
		if err != nil {
			log.Printf("Read error: %v", err)
			continue
		}

		for i := 0; i < n; i++ {
			frame, err := decoder.DecodeByte(buf[i])
			if err != nil {
				fmt.Printf("[ERROR] %v\n", err)
				continue
			}
			if frame != nil {
				fmt.Print(keel.FormatFrame(frame))
			}
		}
	}
}
