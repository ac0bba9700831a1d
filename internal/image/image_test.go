package image

import (
	"testing"

	"github.com/retroenv/cyacd2bin/internal/cyacd"
	"github.com/retroenv/retrogolib/assert"
)

func insertRow(t *testing.T, img *Image, arrayID byte, rowNum uint16, data []byte) {
	t.Helper()
	err := img.Insert(&cyacd.Row{
		ArrayID: arrayID,
		RowNum:  rowNum,
		Data:    data,
	})
	assert.NoError(t, err)
}

func TestImageInsert(t *testing.T) {
	img := New()
	assert.Equal(t, 0, img.Len())

	insertRow(t, img, 0, 5, []byte{0x01, 0x02})
	insertRow(t, img, 1, 0, []byte{0x03})

	assert.Equal(t, 2, img.Len())

	data, ok := img.Payload(0, 5)
	assert.True(t, ok)
	assert.Equal(t, []byte{0x01, 0x02}, data)

	_, ok = img.Payload(0, 6)
	assert.False(t, ok)
}

// Inserting the same (array, row) key twice keeps only the later payload,
// later lines of a cyacd file may patch earlier ones.
func TestImageLastWriteWins(t *testing.T) {
	img := New()

	insertRow(t, img, 0, 10, []byte{0x11, 0x11})
	insertRow(t, img, 0, 10, []byte{0x22, 0x22})

	assert.Equal(t, 1, img.Len())

	data, ok := img.Payload(0, 10)
	assert.True(t, ok)
	assert.Equal(t, []byte{0x22, 0x22}, data)
}

// The image copies row payloads, mutating the source row afterwards must
// not change the stored data.
func TestImageCopiesPayload(t *testing.T) {
	img := New()

	row := &cyacd.Row{ArrayID: 0, RowNum: 0, Data: []byte{0x01, 0x02}}
	assert.NoError(t, img.Insert(row))
	row.Data[0] = 0xFF

	data, _ := img.Payload(0, 0)
	assert.Equal(t, []byte{0x01, 0x02}, data)
}

func TestImageArrays(t *testing.T) {
	img := New()

	insertRow(t, img, 3, 0, []byte{0x01})
	insertRow(t, img, 0, 0, []byte{0x02})
	insertRow(t, img, 1, 0, []byte{0x03})
	insertRow(t, img, 1, 1, []byte{0x04})

	assert.Equal(t, []byte{0, 1, 3}, img.Arrays())
}

func TestImageRowNumbers(t *testing.T) {
	img := New()

	insertRow(t, img, 0, 511, []byte{0x01})
	insertRow(t, img, 0, 0, []byte{0x02})
	insertRow(t, img, 0, 302, []byte{0x03})
	insertRow(t, img, 1, 7, []byte{0x04})

	assert.Equal(t, []uint16{0, 302, 511}, img.RowNumbers(0))
	assert.Equal(t, []uint16{7}, img.RowNumbers(1))
	assert.Equal(t, 0, len(img.RowNumbers(2)))
}

func TestImageSeal(t *testing.T) {
	img := New()
	insertRow(t, img, 0, 0, []byte{0x01})

	img.Seal()

	err := img.Insert(&cyacd.Row{ArrayID: 0, RowNum: 1, Data: []byte{0x02}})
	assert.Equal(t, ErrSealed, err)
	assert.Equal(t, 1, img.Len())
}

func TestRanges(t *testing.T) {
	tests := []struct {
		name     string
		rows     []uint16
		expected string
	}{
		{name: "no rows", rows: nil, expected: ""},
		{name: "single row", rows: []uint16{4}, expected: "4"},
		{name: "single run", rows: []uint16{0, 1, 2, 3}, expected: "0-3"},
		{name: "runs and singles", rows: []uint16{0, 1, 2, 302, 511}, expected: "0-2, 302, 511"},
		{name: "unordered input", rows: []uint16{511, 1, 0, 2, 302}, expected: "0-2, 302, 511"},
		{name: "two runs", rows: []uint16{402, 403, 404, 510, 511}, expected: "402-404, 510-511"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := New()
			for _, rowNum := range tt.rows {
				insertRow(t, img, 0, rowNum, []byte{0x01})
			}
			assert.Equal(t, tt.expected, img.Ranges(0))
		})
	}
}
