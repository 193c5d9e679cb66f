package params

import (
	"strconv"
	"strings"
)

// Substitute replaces every $1, $2, ... in text with the value at that
// position. Replacement is plain text and runs in list order, so no
// quoting or escaping is applied to the values.
func Substitute(values []string, text string) string {
	for i, v := range values {
		text = strings.ReplaceAll(text, "$"+strconv.Itoa(i+1), v)
	}
	return text
}

// Merge combines the listed values with prompted answers for the markers
// above len(values). Listed values take precedence.
func Merge(values []string, answers map[int]string) map[int]string {
	merged := make(map[int]string, len(values)+len(answers))
	for n, v := range answers {
		if n > len(values) {
			merged[n] = v
		}
	}
	for i, v := range values {
		merged[i+1] = v
	}
	return merged
}

// SubstituteMarkers replaces each whole marker in text in a single pass, so
// $1 never touches $10 and inserted values are not scanned again. Markers
// without a value are left as they are.
func SubstituteMarkers(values map[int]string, text string) string {
	return markerRegex.ReplaceAllStringFunc(text, func(marker string) string {
		n, err := strconv.Atoi(marker[1:])
		if err != nil {
			return marker
		}
		if v, ok := values[n]; ok {
			return v
		}
		return marker
	})
}
