package core

import (
	"fmt"
	"strconv"
	"strings"
)

// nextSerialID generates the next id for a collection using PREFIX-NNN
// identifiers: the highest numeric suffix among well-formed ids plus one,
// zero-padded to three digits. Malformed ids are ignored, so deleting the
// newest record never causes the id to be reissued.
func nextSerialID(prefix string, ids []string) string {
	max := 0
	for _, id := range ids {
		rest, ok := strings.CutPrefix(id, prefix+"-")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(rest)
		if err != nil || n < 0 {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s-%03d", prefix, max+1)
}
