// Package static provides non-interactive terminal output components.
//
// This package contains components for rendering formatted output
// that does not require user interaction, such as the device tables
// printed by "runios devices" and the not-found alternatives list.
package static

import (
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/raphi011/runios/internal/device"
	"github.com/raphi011/runios/internal/ui/styles"
)

// Column headers for device tables.
var (
	DeviceHeaders    = []string{"NAME", "VERSION", "UDID"}
	SimulatorHeaders = []string{"NAME", "VERSION", "UDID", "STATE"}
)

// RenderTable creates a formatted table with proper column alignment.
// Headers and rows are rendered using lipgloss/table which automatically
// calculates column widths based on content. No borders are rendered.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var output strings.Builder

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}

// DeviceTableRow returns the cells for d, matching DeviceHeaders.
func DeviceTableRow(d device.Device) []string {
	return []string{d.Name, d.Version, d.UDID}
}

// SimulatorTableRow returns the cells for s, matching SimulatorHeaders.
// Booted simulators get a highlighted state cell.
func SimulatorTableRow(s device.Simulator) []string {
	state := "Shutdown"
	if s.Booted {
		state = styles.SuccessStyle.Render(styles.SymbolBooted + " Booted")
	}
	return []string{s.Name, s.Version, s.UDID, state}
}

// DeviceTable renders devices in the given order.
func DeviceTable(devices []device.Device) string {
	rows := make([][]string, 0, len(devices))
	for _, d := range devices {
		rows = append(rows, DeviceTableRow(d))
	}
	return RenderTable(DeviceHeaders, rows)
}

// SimulatorTable renders simulators in the given order.
func SimulatorTable(sims []device.Simulator) string {
	rows := make([][]string, 0, len(sims))
	for _, s := range sims {
		rows = append(rows, SimulatorTableRow(s))
	}
	return RenderTable(SimulatorHeaders, rows)
}
