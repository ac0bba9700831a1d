package cyacd

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/retroenv/cyacd2bin/internal/checksum"
	"github.com/retroenv/retrogolib/assert"
)

func TestReader(t *testing.T) {
	content := strings.Join([]string{
		"1A0911AA0000",
		rowLine(0, 0, []byte{0x01, 0x02}, checksum.Summation),
		rowLine(1, 3, []byte{0x03, 0x04}, checksum.Summation),
	}, "\n")

	reader := NewReader(strings.NewReader(content))

	hdr, err := reader.Header()
	assert.NoError(t, err)
	assert.Equal(t, uint32(0x1A0911AA), hdr.SiliconID)

	row, err := reader.Next()
	assert.NoError(t, err)
	assert.Equal(t, byte(0), row.ArrayID)
	assert.Equal(t, []byte{0x01, 0x02}, row.Data)

	row, err = reader.Next()
	assert.NoError(t, err)
	assert.Equal(t, byte(1), row.ArrayID)
	assert.Equal(t, uint16(3), row.RowNum)

	_, err = reader.Next()
	assert.Equal(t, io.EOF, err)
}

// Header is read once and cached, repeated calls return the same result.
func TestReaderHeaderIdempotent(t *testing.T) {
	reader := NewReader(strings.NewReader("1A0911AA0000\n"))

	first, err := reader.Header()
	assert.NoError(t, err)

	second, err := reader.Header()
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

// Next reads the header implicitly if it has not been requested yet.
func TestReaderNextReadsHeader(t *testing.T) {
	content := "1A0911AA0000\n" + rowLine(0, 1, []byte{0xAA}, checksum.Summation)
	reader := NewReader(strings.NewReader(content))

	row, err := reader.Next()
	assert.NoError(t, err)
	assert.Equal(t, uint16(1), row.RowNum)

	hdr, err := reader.Header()
	assert.NoError(t, err)
	assert.Equal(t, uint32(0x1A0911AA), hdr.SiliconID)
}

// A row record before the header line aborts without decoding it as data.
func TestReaderHeaderMissing(t *testing.T) {
	content := rowLine(0, 0, []byte{0x01, 0x02}, checksum.Summation)
	reader := NewReader(strings.NewReader(content))

	_, err := reader.Header()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrHeaderMissing))

	_, err = reader.Next()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrHeaderMissing))
}

func TestReaderSkipsBlankLines(t *testing.T) {
	content := strings.Join([]string{
		"1A0911AA0000",
		"",
		rowLine(0, 2, []byte{0x05}, checksum.Summation),
		"",
	}, "\n")

	reader := NewReader(strings.NewReader(content))

	row, err := reader.Next()
	assert.NoError(t, err)
	assert.Equal(t, uint16(2), row.RowNum)

	_, err = reader.Next()
	assert.Equal(t, io.EOF, err)
}

// Row errors carry the 1-based line number of the offending line.
func TestReaderErrorLineNumber(t *testing.T) {
	content := strings.Join([]string{
		"1A0911AA0000",
		rowLine(0, 0, []byte{0x01}, checksum.Summation),
		":000000000401029C",
	}, "\n")

	reader := NewReader(strings.NewReader(content))

	_, err := reader.Next()
	assert.NoError(t, err)

	_, err = reader.Next()
	assert.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "line 3:"))

	var malformed *MalformedRowError
	assert.True(t, errors.As(err, &malformed))
}

func TestReaderEmptyInput(t *testing.T) {
	reader := NewReader(strings.NewReader(""))

	_, err := reader.Header()
	assert.Error(t, err)
}

func TestReaderRowsValidatedWithHeaderAlgorithm(t *testing.T) {
	content := strings.Join([]string{
		"1A0911AA0001", // CRC-16-CCITT selected
		rowLine(0, 0, []byte{0x01, 0x02}, checksum.CRC16),
	}, "\n")

	reader := NewReader(strings.NewReader(content))

	row, err := reader.Next()
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02}, row.Data)
}
