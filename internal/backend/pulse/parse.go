package pulse

import (
	"bufio"
	"strconv"
	"strings"
)

// object is one sink or source from "pactl list sinks|sources".
type object struct {
	Name        string
	Description string
	Channels    int
	Monitor     bool
}

// parseList parses the long listing printed by "pactl list sinks" or
// "pactl list sources". Blocks start with a "Sink #N" / "Source #N" header.
func parseList(out string) []object {
	var objs []object
	var cur *object
	flush := func() {
		if cur != nil && cur.Name != "" {
			objs = append(objs, *cur)
		}
		cur = nil
	}

	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		line := sc.Text()
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(line, "Sink #") || strings.HasPrefix(line, "Source #") {
			flush()
			cur = &object{}
			continue
		}
		if cur == nil {
			continue
		}
		switch {
		case strings.HasPrefix(trimmed, "Name: "):
			cur.Name = strings.TrimPrefix(trimmed, "Name: ")
		case strings.HasPrefix(trimmed, "Description: "):
			cur.Description = strings.TrimPrefix(trimmed, "Description: ")
		case strings.HasPrefix(trimmed, "Sample Specification: "):
			cur.Channels = parseChannels(strings.TrimPrefix(trimmed, "Sample Specification: "))
		case strings.HasPrefix(trimmed, "Monitor of Sink: "):
			cur.Monitor = strings.TrimPrefix(trimmed, "Monitor of Sink: ") != "n/a"
		}
	}
	flush()

	for i := range objs {
		if strings.HasSuffix(objs[i].Name, ".monitor") {
			objs[i].Monitor = true
		}
	}
	return objs
}

// parseChannels extracts the channel count from a sample spec such as
// "s16le 2ch 44100Hz".
func parseChannels(spec string) int {
	for _, f := range strings.Fields(spec) {
		if n, ok := strings.CutSuffix(f, "ch"); ok {
			if c, err := strconv.Atoi(n); err == nil {
				return c
			}
		}
	}
	return 0
}

// parseEvent interprets one line of "pactl subscribe" output, e.g.
// "Event 'change' on sink #52". It returns the facility ("sink", "source",
// "server", "card", ...) and false for lines that are not events.
func parseEvent(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "Event ") {
		return "", false
	}
	_, rest, ok := strings.Cut(line, " on ")
	if !ok {
		return "", false
	}
	facility, _, _ := strings.Cut(rest, " ")
	if facility == "" {
		return "", false
	}
	return facility, true
}
