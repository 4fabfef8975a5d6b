package util

import (
	"sort"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// BulkKey returns a deterministic composite key for a set of member keys:
// prefix, a colon and the 16 hex digit xxhash64 of the sorted members.
// The order of keys does not matter.
func BulkKey(prefix string, keys []string) string {
	s := make([]string, len(keys))
	copy(s, keys)
	sort.Strings(s)

	d := xxhash.New()
	for _, k := range s {
		// length-prefix each member so {"a,b"} and {"a","b"} differ
		_, _ = d.WriteString(strconv.Itoa(len(k)))
		_, _ = d.WriteString(":")
		_, _ = d.WriteString(k)
	}
	sum := strconv.FormatUint(d.Sum64(), 16)
	for len(sum) < 16 {
		sum = "0" + sum
	}
	return prefix + ":" + sum
}
