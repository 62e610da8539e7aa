package migrate

import (
	"strconv"
	"strings"
)

// CompareVersions compares two dotted numeric version strings segment by
// segment, returning -1, 0 or 1. Missing segments read as zero, so
// "1.2" == "1.2.0". Non-numeric segments read as zero.
func CompareVersions(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		av, bv := segment(as, i), segment(bs, i)
		if av < bv {
			return -1
		}
		if av > bv {
			return 1
		}
	}
	return 0
}

func segment(parts []string, i int) int {
	if i >= len(parts) {
		return 0
	}
	v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
	if err != nil {
		return 0
	}
	return v
}
