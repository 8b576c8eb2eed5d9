package util

import (
	"fmt"
	"strconv"
	"strings"
)

var sizeUnits = []struct {
	suffix string
	factor int64
}{
	// Longest suffixes first so "GiB" is not read as "B".
	{"TIB", 1 << 40},
	{"GIB", 1 << 30},
	{"MIB", 1 << 20},
	{"KIB", 1 << 10},
	{"TB", 1e12},
	{"GB", 1e9},
	{"MB", 1e6},
	{"KB", 1e3},
	{"B", 1},
}

// ParseSize parses a size such as "25GB", "512 MiB" or "1000" into bytes.
// Decimal units (KB, MB, GB, TB) are powers of 1000 and binary units
// (KiB, MiB, GiB, TiB) powers of 1024, matching how the console reports
// storage and bandwidth limits.
func ParseSize(s string) (int64, error) {
	in := strings.ToUpper(strings.TrimSpace(s))
	if in == "" {
		return 0, fmt.Errorf("empty size")
	}

	factor := int64(1)
	for _, u := range sizeUnits {
		if strings.HasSuffix(in, u.suffix) {
			factor = u.factor
			in = strings.TrimSpace(strings.TrimSuffix(in, u.suffix))
			break
		}
	}

	n, err := strconv.ParseFloat(in, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	return int64(n * float64(factor)), nil
}

// FormatSize renders bytes with the largest decimal unit that keeps the
// value at or above one, e.g. 25000000000 -> "25 GB".
func FormatSize(b int64) string {
	for _, u := range sizeUnits[4:8] {
		if b >= u.factor {
			v := strconv.FormatFloat(float64(b)/float64(u.factor), 'f', 2, 64)
			v = strings.TrimRight(strings.TrimRight(v, "0"), ".")
			return v + " " + u.suffix
		}
	}
	return strconv.FormatInt(b, 10) + " B"
}
