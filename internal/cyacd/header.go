package cyacd

import (
	"encoding/hex"

	"github.com/retroenv/cyacd2bin/internal/checksum"
)

// Header line layout: silicon id (4 bytes), silicon revision (1 byte),
// checksum type (1 byte), all hex-encoded.
const (
	headerBytes      = 6
	headerLineLength = headerBytes * 2
)

// Header contains the global metadata from the first line of a cyacd file.
// It is immutable once parsed.
type Header struct {
	SiliconID    uint32
	SiliconRev   byte
	ChecksumType checksum.Type
}

// ParseHeader decodes the header line of a cyacd file.
func ParseHeader(line string) (Header, error) {
	if len(line) != headerLineLength {
		return Header{}, &MalformedHeaderError{
			Length:   len(line),
			Expected: headerLineLength,
		}
	}

	data, err := hex.DecodeString(line)
	if err != nil {
		return Header{}, &MalformedHeaderError{Err: err}
	}

	hdr := Header{
		SiliconID: uint32(data[0])<<24 | uint32(data[1])<<16 |
			uint32(data[2])<<8 | uint32(data[3]),
		SiliconRev:   data[4],
		ChecksumType: checksum.Type(data[5]),
	}

	if !hdr.ChecksumType.Valid() {
		return Header{}, &UnknownChecksumTypeError{Type: data[5]}
	}

	return hdr, nil
}
