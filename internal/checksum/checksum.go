// Package checksum implements the row checksum algorithms of the cyacd format.
package checksum

import "fmt"

// Type selects the checksum algorithm declared in the cyacd header.
type Type byte

const (
	// Summation is the 2's complement summation checksum.
	Summation Type = 0x00

	// CRC16 is the CRC-16-CCITT checksum.
	CRC16 Type = 0x01
)

// CRC-16-CCITT parameters.
const (
	crc16Polynomial   = 0x1021
	crc16InitialValue = 0xFFFF
	crc16HighBitMask  = 0x8000
)

func (t Type) String() string {
	switch t {
	case Summation:
		return "2's complement summation"
	case CRC16:
		return "CRC-16-CCITT"
	default:
		return fmt.Sprintf("unknown (0x%02X)", byte(t))
	}
}

// Valid returns whether t is a known checksum type.
func (t Type) Valid() bool {
	return t == Summation || t == CRC16
}

// Compute calculates the checksum of data using the given algorithm.
// For summation the result is the 2's complement of the byte sum,
// truncated to 8 bits, so that adding it to the sum of data yields zero.
func Compute(t Type, data []byte) uint16 {
	switch t {
	case CRC16:
		return crc16(data)
	default:
		var sum byte
		for _, b := range data {
			sum += b
		}
		return uint16(^sum + 1)
	}
}

// Verify checks a declared one-byte row checksum against data.
// Summation checksums are defined by the zero-sum identity: the byte sum of
// data plus the declared checksum must truncate to zero. CRC checksums are
// compared by value, truncated to the one-byte width of the row checksum
// field.
func Verify(t Type, data []byte, declared byte) bool {
	if t == CRC16 {
		return byte(crc16(data)) == declared
	}

	var sum byte
	for _, b := range data {
		sum += b
	}
	return sum+declared == 0
}

func crc16(data []byte) uint16 {
	crc := uint16(crc16InitialValue)

	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&crc16HighBitMask != 0 {
				crc = (crc << 1) ^ crc16Polynomial
			} else {
				crc <<= 1
			}
		}
	}

	return crc
}
