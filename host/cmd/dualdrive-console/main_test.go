package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "board.json")
	test.That(t, os.WriteFile(path, []byte(body), 0o600), test.ShouldBeNil)
	return path
}

func TestCheckConfig(t *testing.T) {
	var out bytes.Buffer
	path := writeConfig(t, `{"dead_band": 0.05, "direction_mode": "line"}`)

	err := newApp(&out).Run([]string{"dualdrive-console", "check-config", path})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out.String(), test.ShouldContainSubstring, `"dead_band": 0.05`)
	test.That(t, out.String(), test.ShouldContainSubstring, `"direction_mode": "line"`)
	test.That(t, out.String(), test.ShouldContainSubstring, `"sample_hz": 100`)
}

func TestCheckConfigInvalid(t *testing.T) {
	var out bytes.Buffer
	path := writeConfig(t, `{"dead_band": 0.7}`)

	err := newApp(&out).Run([]string{"dualdrive-console", "check-config", path})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "dead_band")
}

func TestCheckConfigArgs(t *testing.T) {
	var out bytes.Buffer
	err := newApp(&out).Run([]string{"dualdrive-console", "check-config"})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "FILE")

	err = newApp(&out).Run([]string{"dualdrive-console", "check-config", filepath.Join(t.TempDir(), "missing.json")})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestMonitorNeedsDevice(t *testing.T) {
	var out bytes.Buffer
	err := newApp(&out).Run([]string{"dualdrive-console", "monitor", "--device", ""})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "no serial device")
}
