// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Tidewater Robotics

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/tidewater-robotics/bollard/pkg/stream"
)

// GetPassword retrieves the WebSocket password from the environment or
// prompts the user.
func GetPassword() (string, error) {
	// First check environment variable
	if pw := os.Getenv("BOLLARD_PASSWORD"); pw != "" {
		return pw, nil
	}

	// Prompt user for password (hide input)
	fmt.Fprint(os.Stderr, "Password: ")

	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		// Fallback to regular input if terminal functions fail
		reader := bufio.NewReader(os.Stdin)
		password, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("failed to read password: %v", err)
		}
		fmt.Fprintln(os.Stderr) // newline after password
		return strings.TrimSpace(password), nil
	}

	fmt.Fprintln(os.Stderr) // newline after password
	return string(passwordBytes), nil
}

// buildTransport constructs a serial or WebSocket transport from the
// connection flags. The transport is not opened yet; the streamer opens it
// on connect/start.
func buildTransport() (stream.Transport, error) {
	if wsURL != "" {
		password := ""
		if wsUsername != "" {
			var err error
			password, err = GetPassword()
			if err != nil {
				return nil, err
			}
		}

		return &stream.WebSocketTransport{
			URL:                wsURL,
			Username:           wsUsername,
			Password:           password,
			InsecureSkipVerify: wsNoSSLVerify,
		}, nil
	}

	if portName != "" {
		return stream.NewSerialTransport(portName, baudRate), nil
	}

	return nil, fmt.Errorf("either --port or --url must be specified")
}
