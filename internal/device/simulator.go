package device

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Simulator is an available iOS simulator.
type Simulator struct {
	Device
	Booted bool `json:"booted"`
}

type simctlList struct {
	Devices map[string][]simctlDevice `json:"devices"`
}

type simctlDevice struct {
	UDID         string `json:"udid"`
	Name         string `json:"name"`
	State        string `json:"state"`
	Availability string `json:"availability"` // Xcode < 10.1
	IsAvailable  *bool  `json:"isAvailable"`
}

func (d simctlDevice) available() bool {
	if d.IsAvailable != nil {
		return *d.IsAvailable
	}
	return d.Availability == "(available)"
}

const runtimePrefix = "com.apple.CoreSimulator.SimRuntime.iOS-"

// runtimeVersion returns the iOS version of a simctl runtime key, or false
// for non-iOS runtimes (watchOS, tvOS, ...).
// Keys look like "iOS 9.3" or "com.apple.CoreSimulator.SimRuntime.iOS-17-0".
func runtimeVersion(key string) (string, bool) {
	if v, ok := strings.CutPrefix(key, runtimePrefix); ok {
		return strings.ReplaceAll(v, "-", "."), true
	}
	if v, ok := strings.CutPrefix(key, "iOS "); ok {
		return v, true
	}
	return "", false
}

// ParseSimulators parses `xcrun simctl list --json devices`. It keeps
// available iOS simulators, ordered by ascending runtime version and then
// by their order in the listing.
func ParseSimulators(data []byte) ([]Simulator, error) {
	var list simctlList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse simulator list: %w", err)
	}

	type runtime struct {
		version string
		devices []simctlDevice
	}
	var runtimes []runtime
	for key, devices := range list.Devices {
		if v, ok := runtimeVersion(key); ok {
			runtimes = append(runtimes, runtime{version: v, devices: devices})
		}
	}
	slices.SortStableFunc(runtimes, func(a, b runtime) int {
		return compareVersions(a.version, b.version)
	})

	var sims []Simulator
	for _, rt := range runtimes {
		for _, d := range rt.devices {
			if !d.available() {
				continue
			}
			sims = append(sims, Simulator{
				Device: Device{Name: d.Name, UDID: d.UDID, Version: rt.version},
				Booted: d.State == "Booted",
			})
		}
	}
	return sims, nil
}

// FindSimulator picks the simulator to run on. A booted simulator wins
// regardless of name, since only one simulator can be driven at a time.
// Otherwise the first simulator named name is returned.
func FindSimulator(sims []Simulator, name string) (Simulator, bool) {
	var match *Simulator
	for i := range sims {
		if sims[i].Booted {
			return sims[i], true
		}
		if match == nil && sims[i].Name == name {
			match = &sims[i]
		}
	}
	if match == nil {
		return Simulator{}, false
	}
	return *match, true
}

// compareVersions orders dotted numeric versions; non-numeric parts
// compare as zero.
func compareVersions(a, b string) int {
	as, bs := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < max(len(as), len(bs)); i++ {
		var x, y int
		if i < len(as) {
			x, _ = strconv.Atoi(as[i])
		}
		if i < len(bs) {
			y, _ = strconv.Atoi(bs[i])
		}
		if x != y {
			if x < y {
				return -1
			}
			return 1
		}
	}
	return 0
}
