package cyacd

import (
	"encoding/hex"

	"github.com/retroenv/cyacd2bin/internal/checksum"
)

// Row line layout after hex decoding: array id (1 byte), row number
// (2 bytes big-endian), byte count (2 bytes big-endian), payload
// (byte count bytes), checksum (1 byte).
const (
	rowFieldBytes    = 5
	rowChecksumBytes = 1
	minRowBytes      = rowFieldBytes + rowChecksumBytes
)

// Row is a single flash row record decoded from a cyacd line.
type Row struct {
	ArrayID  byte
	RowNum   uint16
	Data     []byte
	Checksum byte
}

// ParseRow decodes one data line into a Row, verifying its checksum with the
// algorithm selected by the header. A leading ':' marker is stripped before
// decoding. The declared checksum covers all preceding fields: array id, row
// number, byte count and payload.
func ParseRow(line string, checksumType checksum.Type) (*Row, error) {
	if len(line) > 0 && line[0] == ':' {
		line = line[1:]
	}

	data, err := hex.DecodeString(line)
	if err != nil {
		return nil, &MalformedRowError{Err: err}
	}

	if len(data) < minRowBytes {
		return nil, &MalformedRowError{
			Length:   len(data),
			Expected: minRowBytes,
		}
	}

	arrayID := data[0]
	rowNum := uint16(data[1])<<8 | uint16(data[2])
	byteCount := uint16(data[3])<<8 | uint16(data[4])

	expected := rowFieldBytes + int(byteCount) + rowChecksumBytes
	if len(data) != expected {
		return nil, &MalformedRowError{
			Length:   len(data),
			Expected: expected,
		}
	}

	declared := data[len(data)-1]
	fields := data[:len(data)-1]
	if !checksum.Verify(checksumType, fields, declared) {
		return nil, &ChecksumMismatchError{
			ArrayID:  arrayID,
			RowNum:   rowNum,
			Declared: declared,
			Computed: byte(checksum.Compute(checksumType, fields)),
		}
	}

	row := &Row{
		ArrayID:  arrayID,
		RowNum:   rowNum,
		Data:     make([]byte, byteCount),
		Checksum: declared,
	}
	copy(row.Data, data[rowFieldBytes:rowFieldBytes+int(byteCount)])

	return row, nil
}
