package rooms

import (
	"fmt"
	"strconv"
	"strings"
)

// The full set of room numbers for the property, fixed at startup.
// Keys are always 3-digit zero-padded strings.
var allRoomNumbers = []string{
	"001", "002", "003", "004", "005", "006", "007",
	"011", "012", "013", "014", "015", "016", "017",
	"101", "102", "103", "104", "105", "106", "107", "108", "109", "110",
	"111", "112", "113", "114", "115", "116", "117",
	"201", "202", "203", "204", "205", "208", "209", "210", "211", "212", "213", "214", "215", "216", "217",
}

var roomSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(allRoomNumbers))
	for _, r := range allRoomNumbers {
		set[r] = struct{}{}
	}
	return set
}()

// All returns every valid room number in display order.
func All() []string {
	out := make([]string, len(allRoomNumbers))
	copy(out, allRoomNumbers)
	return out
}

// IsValid reports whether the padded form of id is a known room.
func IsValid(id string) bool {
	_, ok := roomSet[Pad(id)]
	return ok
}

// Pad normalizes a room identifier like "7" or " 007 " to "007". Inputs
// that are not numeric are returned trimmed, unpadded; IsValid rejects
// them.
func Pad(id string) string {
	s := strings.TrimSpace(id)
	n, err := strconv.Atoi(s)
	if err != nil {
		return s
	}
	return fmt.Sprintf("%03d", n)
}
