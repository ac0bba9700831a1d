package image

import (
	"fmt"
	"strings"
)

// Ranges returns the present row numbers of an array as a human-readable
// list of maximal consecutive runs, for example "0-302, 511".
func (i *Image) Ranges(arrayID byte) string {
	rows := i.RowNumbers(arrayID)
	if len(rows) == 0 {
		return ""
	}

	var ranges []string
	start := rows[0]
	for idx := 1; idx < len(rows); idx++ {
		if rows[idx] > rows[idx-1]+1 {
			ranges = append(ranges, formatRange(start, rows[idx-1]))
			start = rows[idx]
		}
	}
	ranges = append(ranges, formatRange(start, rows[len(rows)-1]))

	return strings.Join(ranges, ", ")
}

func formatRange(start, end uint16) string {
	if start == end {
		return fmt.Sprintf("%d", start)
	}
	return fmt.Sprintf("%d-%d", start, end)
}
