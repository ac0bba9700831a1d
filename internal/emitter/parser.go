package emitter

import (
	"bufio"
	"fmt"
	"io"

	"github.com/retroenv/cyacd2bin/internal/checksum"
	"github.com/retroenv/cyacd2bin/internal/cyacd"
	"github.com/retroenv/cyacd2bin/internal/image"
)

const (
	headerBytes   = 6
	rowFieldBytes = 5
)

// Parse reads a binary image produced by Emit back into a header and flash
// image. It is the inverse of Emit and backs the -verify flag: a re-parsed
// output must match the in-memory image exactly.
func Parse(r io.Reader) (cyacd.Header, *image.Image, error) {
	buf := bufio.NewReader(r)

	raw := make([]byte, headerBytes)
	if _, err := io.ReadFull(buf, raw); err != nil {
		return cyacd.Header{}, nil, fmt.Errorf("reading header: %w", err)
	}

	hdr := cyacd.Header{
		SiliconID: uint32(raw[0])<<24 | uint32(raw[1])<<16 |
			uint32(raw[2])<<8 | uint32(raw[3]),
		SiliconRev:   raw[4],
		ChecksumType: checksum.Type(raw[5]),
	}
	if !hdr.ChecksumType.Valid() {
		return cyacd.Header{}, nil, fmt.Errorf("unknown checksum type 0x%02X", raw[5])
	}

	img := image.New()
	for {
		row, err := parseRow(buf, hdr.ChecksumType)
		if err == io.EOF {
			return hdr, img, nil
		}
		if err != nil {
			return cyacd.Header{}, nil, fmt.Errorf("row entry %d: %w", img.Len(), err)
		}
		if err := img.Insert(row); err != nil {
			return cyacd.Header{}, nil, fmt.Errorf("row entry %d: %w", img.Len(), err)
		}
	}
}

func parseRow(r *bufio.Reader, checksumType checksum.Type) (*cyacd.Row, error) {
	fields := make([]byte, rowFieldBytes)
	if _, err := io.ReadFull(r, fields); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("reading row fields: %w", err)
	}

	byteCount := int(fields[3])<<8 | int(fields[4])
	data := make([]byte, byteCount+1)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("reading row payload: %w", err)
	}

	fields = append(fields, data[:byteCount]...)
	declared := data[byteCount]
	if !checksum.Verify(checksumType, fields, declared) {
		return nil, fmt.Errorf("checksum mismatch: declared 0x%02X, computed 0x%02X",
			declared, byte(checksum.Compute(checksumType, fields)))
	}

	return &cyacd.Row{
		ArrayID:  fields[0],
		RowNum:   uint16(fields[1])<<8 | uint16(fields[2]),
		Data:     data[:byteCount:byteCount],
		Checksum: declared,
	}, nil
}
