// Package device parses the device and simulator lists reported by the
// Xcode toolchain and picks the one to run on.
package device

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Unspecified is the name query used when --device is passed without a
// value. It selects the only connected device, if there is exactly one.
const Unspecified = "<any>"

// Device is a physical device or simulator instance.
type Device struct {
	Name    string `json:"name"`
	UDID    string `json:"udid"`
	Version string `json:"version,omitempty"`
}

// FormattedName returns the "Name (Version)" display form.
func (d Device) FormattedName() string {
	return fmt.Sprintf("%s (%s)", d.Name, d.Version)
}

var (
	deviceLine    = regexp.MustCompile(`(.*?) \((.*?)\) \[(.*?)\]`)
	simulatorLine = regexp.MustCompile(`(.*?) \((.*?)\) \[(.*?)\] \((.*?)\)`)
)

// ParseDeviceList parses `xcrun instruments -s` output. Lines of the form
// `Name (Version) [UDID]` are devices; lines with a trailing group such as
// `(Simulator)` and lines without a version are skipped.
func ParseDeviceList(text string) []Device {
	var devices []Device
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		m := deviceLine.FindStringSubmatch(line)
		if m == nil || simulatorLine.MatchString(line) {
			continue
		}
		devices = append(devices, Device{Name: m[1], Version: m[2], UDID: m[3]})
	}
	return devices
}

// MatchByName finds a device by exact name or formatted name. The list is
// scanned from the end, so the last of several equally named devices wins.
// Unspecified matches the sole device of a one-element list.
func MatchByName(devices []Device, name string) (Device, bool) {
	if name == Unspecified && len(devices) == 1 {
		return devices[0], true
	}
	for i := len(devices) - 1; i >= 0; i-- {
		if devices[i].Name == name || devices[i].FormattedName() == name {
			return devices[i], true
		}
	}
	return Device{}, false
}

// MatchByUDID finds a device by exact UDID, scanning from the end.
func MatchByUDID(devices []Device, udid string) (Device, bool) {
	for i := len(devices) - 1; i >= 0; i-- {
		if devices[i].UDID == udid {
			return devices[i], true
		}
	}
	return Device{}, false
}

// Suggest orders devices as alternatives for a failed query and returns
// up to n of them (all when n <= 0). Fuzzy matches of query come first,
// best first; the remaining devices follow in reverse list order, the
// order matching scans them in.
func Suggest(devices []Device, query string, n int) []Device {
	names := make([]string, len(devices))
	for i, d := range devices {
		names[i] = d.Name
	}

	out := make([]Device, 0, len(devices))
	seen := make(map[int]bool, len(devices))
	if query != "" && query != Unspecified {
		for _, m := range fuzzy.Find(query, names) {
			out = append(out, devices[m.Index])
			seen[m.Index] = true
		}
	}
	for i := len(devices) - 1; i >= 0; i-- {
		if !seen[i] {
			out = append(out, devices[i])
		}
	}
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
