//go:build rp2040

package main

import "machine"

var crlf = []byte("\r\n")

// InitUSB configures the USB CDC port that carries the debug log
func InitUSB() {
	_ = machine.Serial.Configure(machine.UARTConfig{})
}

// writeDebugLine is the core debug writer: one CRLF-terminated line per
// message. Drops output while no host is attached.
func writeDebugLine(msg string) {
	_, _ = machine.Serial.Write([]byte(msg))
	_, _ = machine.Serial.Write(crlf)
}
