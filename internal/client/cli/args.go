package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var errUsage = errors.New("usage")

// parseID reads the entry id from the first argument.
func parseID(cmd string, args []string) (int64, error) {
	if len(args) == 0 {
		printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
		return 0, errUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		printlnFn(fmt.Sprintf("Invalid entry id %q", args[0]))
		return 0, errUsage
	}
	return id, nil
}

// optionalInt reads args[i] as a non-negative integer, returning def when
// the argument is absent.
func optionalInt(args []string, i, def int, name string) (int, error) {
	if len(args) <= i {
		return def, nil
	}
	n, err := strconv.Atoi(args[i])
	if err != nil || n < 0 {
		printlnFn(fmt.Sprintf("Invalid %s %q", name, args[i]))
		return 0, errUsage
	}
	return n, nil
}

// parseMood converts user input to a mood level. Empty input yields def.
func parseMood(s string, def int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("mood %q is not a number", s)
	}
	return n, nil
}
