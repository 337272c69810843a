package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/Danondso/soundswitch/internal/device"
)

// runCommand executes one non-interactive command and returns the process
// exit code.
func runCommand(stdout, stderr io.Writer, sw *device.Switcher, args []string) int {
	switch args[0] {
	case "list":
		if len(args) != 1 {
			fmt.Fprintln(stderr, "usage: soundswitch list")
			return 2
		}
		printList(stdout, sw.Refresh())
		return 0

	case "set":
		if len(args) != 3 {
			fmt.Fprintln(stderr, "usage: soundswitch set <input|output> <name|id>")
			return 2
		}
		dir, err := device.ParseDirection(args[1])
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 2
		}
		snap := sw.Refresh()
		dev, ok := findDevice(snap.Devices(dir), args[2])
		if !ok {
			fmt.Fprintf(stderr, "no %s device matches %q\n", dir, args[2])
			return 1
		}
		if err := sw.Select(dir, dev); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		fmt.Fprintf(stdout, "%s: %s\n", dir, dev.Name)
		return 0

	case "cycle":
		if len(args) != 2 {
			fmt.Fprintln(stderr, "usage: soundswitch cycle <input|output>")
			return 2
		}
		dir, err := device.ParseDirection(args[1])
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 2
		}
		sw.Refresh()
		next, ok, err := sw.Cycle(dir)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		if !ok {
			fmt.Fprintf(stdout, "%s: nothing to cycle to\n", dir)
			return 0
		}
		fmt.Fprintf(stdout, "%s: %s\n", dir, next.Name)
		return 0
	}

	fmt.Fprintf(stderr, "unknown command %q\n", args[0])
	return 2
}

// findDevice matches query against device IDs first, then names ignoring
// case.
func findDevice(list []device.Device, query string) (device.Device, bool) {
	for _, d := range list {
		if string(d.ID) == query {
			return d, true
		}
	}
	for _, d := range list {
		if strings.EqualFold(d.Name, query) {
			return d, true
		}
	}
	return device.Device{}, false
}

func printList(w io.Writer, snap device.Snapshot) {
	section := func(title string, list []device.Device, current *device.Device) {
		fmt.Fprintln(w, title)
		if len(list) == 0 {
			fmt.Fprintln(w, "    (none)")
		}
		for _, d := range list {
			mark := " "
			if current != nil && current.Equal(d) {
				mark = "*"
			}
			fmt.Fprintf(w, "  %s %s (%s)\n", mark, d.Name, d.ID)
		}
	}
	section("Input Devices", snap.Inputs, snap.CurrentInput)
	fmt.Fprintln(w)
	section("Output Devices", snap.Outputs, snap.CurrentOutput)
}
