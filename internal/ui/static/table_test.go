package static

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/raphi011/runios/internal/device"
)

func TestRenderTable_Empty(t *testing.T) {
	t.Parallel()

	if got := RenderTable(DeviceHeaders, nil); got != "" {
		t.Errorf("RenderTable(no rows) = %q, want empty", got)
	}
}

func TestDeviceTable(t *testing.T) {
	t.Parallel()

	devices := []device.Device{
		{Name: "Work iPhone", Version: "17.1", UDID: "00008110-AAA"},
		{Name: "iPad", Version: "16.4", UDID: "00008020-BBB"},
	}

	out := ansi.Strip(DeviceTable(devices))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "NAME") {
		t.Errorf("first line should be the header, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "Work iPhone") || !strings.Contains(lines[1], "00008110-AAA") {
		t.Errorf("row order not kept: %q", lines[1])
	}
	if !strings.Contains(lines[2], "iPad") {
		t.Errorf("row order not kept: %q", lines[2])
	}

	// Columns are aligned: the UDIDs start at the same offset.
	if strings.Index(lines[1], "00008110") != strings.Index(lines[2], "00008020") {
		t.Errorf("columns not aligned:\n%s", out)
	}
}

func TestSimulatorTableRow(t *testing.T) {
	t.Parallel()

	sim := device.Simulator{Device: device.Device{Name: "iPhone 15", Version: "17.0", UDID: "S1"}}
	row := SimulatorTableRow(sim)
	if len(row) != len(SimulatorHeaders) {
		t.Fatalf("expected %d columns, got %d", len(SimulatorHeaders), len(row))
	}
	if row[3] != "Shutdown" {
		t.Errorf("state = %q, want Shutdown", row[3])
	}

	sim.Booted = true
	row = SimulatorTableRow(sim)
	if got := ansi.Strip(row[3]); got != "● Booted" {
		t.Errorf("state = %q, want %q", got, "● Booted")
	}
}

func TestSimulatorTable(t *testing.T) {
	t.Parallel()

	sims := []device.Simulator{
		{Device: device.Device{Name: "iPhone 14", Version: "16.4", UDID: "S1"}},
		{Device: device.Device{Name: "iPhone 15", Version: "17.0", UDID: "S2"}, Booted: true},
	}
	out := ansi.Strip(SimulatorTable(sims))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "STATE") || !strings.Contains(lines[2], "● Booted") {
		t.Errorf("unexpected table:\n%s", out)
	}
}
