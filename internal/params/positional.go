package params

import (
	"regexp"
	"sort"
	"strconv"
)

var markerRegex = regexp.MustCompile(`\$(\d+)`)

// Markers returns the distinct positional markers found in sql, ascending.
func Markers(sql string) []int {
	seen := make(map[int]bool)
	var markers []int

	for _, match := range markerRegex.FindAllStringSubmatch(sql, -1) {
		n, err := strconv.Atoi(match[1])
		if err != nil || n == 0 || seen[n] {
			continue
		}
		seen[n] = true
		markers = append(markers, n)
	}

	sort.Ints(markers)
	return markers
}

// Missing returns the markers in sql that have no value when n values are
// supplied.
func Missing(sql string, n int) []int {
	var missing []int
	for _, m := range Markers(sql) {
		if m > n {
			missing = append(missing, m)
		}
	}
	return missing
}
