package utils

import (
	"strconv"
)

// ParseID converts a route parameter to a primary key. Zero, negative and
// malformed values are rejected.
func ParseID(s string) (uint, bool) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
