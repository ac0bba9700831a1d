// Package image implements the in-memory flash image assembled from parsed
// cyacd rows, indexed by (array id, row number).
package image

import (
	"errors"
	"sort"

	"github.com/retroenv/cyacd2bin/internal/cyacd"
)

// ErrSealed indicates an insert into an image after emission began.
var ErrSealed = errors.New("image is sealed, no further rows can be inserted")

type rowKey struct {
	arrayID byte
	rowNum  uint16
}

// Image is a sparse flash image: a mapping from (array id, row number) to
// row payload. Presence is tracked per key, absent rows are never
// materialized. An Image is built incrementally and becomes read-only once
// it is sealed for emission.
type Image struct {
	rows   map[rowKey][]byte
	sealed bool
}

// New creates an empty flash image.
func New() *Image {
	return &Image{
		rows: map[rowKey][]byte{},
	}
}

// Insert stores the payload of a row. Inserting the same (array, row) key
// twice silently overwrites the earlier payload, later lines of a cyacd
// file may patch earlier ones. Row number bounds are not validated, flash
// geometry is informational only.
func (i *Image) Insert(row *cyacd.Row) error {
	if i.sealed {
		return ErrSealed
	}

	data := make([]byte, len(row.Data))
	copy(data, row.Data)
	i.rows[rowKey{arrayID: row.ArrayID, rowNum: row.RowNum}] = data
	return nil
}

// Seal marks the image read-only. Called when emission begins.
func (i *Image) Seal() {
	i.sealed = true
}

// Len returns the total number of present rows across all arrays.
func (i *Image) Len() int {
	return len(i.rows)
}

// Arrays returns the ids of all arrays with at least one present row,
// in ascending order.
func (i *Image) Arrays() []byte {
	seen := map[byte]bool{}
	for key := range i.rows {
		seen[key.arrayID] = true
	}

	arrays := make([]byte, 0, len(seen))
	for id := range seen {
		arrays = append(arrays, id)
	}
	sort.Slice(arrays, func(a, b int) bool { return arrays[a] < arrays[b] })
	return arrays
}

// RowNumbers returns the present row numbers of an array in ascending order.
func (i *Image) RowNumbers(arrayID byte) []uint16 {
	var rows []uint16
	for key := range i.rows {
		if key.arrayID == arrayID {
			rows = append(rows, key.rowNum)
		}
	}
	sort.Slice(rows, func(a, b int) bool { return rows[a] < rows[b] })
	return rows
}

// Payload returns the stored payload for a row and whether it is present.
func (i *Image) Payload(arrayID byte, rowNum uint16) ([]byte, bool) {
	data, ok := i.rows[rowKey{arrayID: arrayID, rowNum: rowNum}]
	return data, ok
}
