// Package emitter serializes an assembled flash image into the compact
// binary output format.
package emitter

import (
	"bufio"
	"fmt"
	"io"

	"github.com/retroenv/cyacd2bin/internal/checksum"
	"github.com/retroenv/cyacd2bin/internal/cyacd"
	"github.com/retroenv/cyacd2bin/internal/image"
)

// Emit writes the binary representation of the image: the header fields
// followed by one entry per present row, arrays and rows in ascending
// order. Absent rows are omitted entirely, no padding or placeholder
// entries are written. Row checksums are recomputed with the header's
// algorithm rather than copied from the input. The image is sealed before
// the first byte is written.
func Emit(w io.Writer, hdr cyacd.Header, img *image.Image) error {
	img.Seal()

	buf := bufio.NewWriter(w)

	header := []byte{
		byte(hdr.SiliconID >> 24),
		byte(hdr.SiliconID >> 16),
		byte(hdr.SiliconID >> 8),
		byte(hdr.SiliconID),
		hdr.SiliconRev,
		byte(hdr.ChecksumType),
	}
	if _, err := buf.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, arrayID := range img.Arrays() {
		for _, rowNum := range img.RowNumbers(arrayID) {
			data, _ := img.Payload(arrayID, rowNum)
			if err := emitRow(buf, hdr.ChecksumType, arrayID, rowNum, data); err != nil {
				return fmt.Errorf("writing array %d row %d: %w", arrayID, rowNum, err)
			}
		}
	}

	if err := buf.Flush(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}
	return nil
}

func emitRow(w io.Writer, checksumType checksum.Type, arrayID byte,
	rowNum uint16, data []byte) error {

	fields := make([]byte, 0, rowFieldBytes+len(data))
	fields = append(fields,
		arrayID,
		byte(rowNum>>8), byte(rowNum),
		byte(len(data)>>8), byte(len(data)),
	)
	fields = append(fields, data...)

	if _, err := w.Write(fields); err != nil {
		return err
	}

	sum := byte(checksum.Compute(checksumType, fields))
	if _, err := w.Write([]byte{sum}); err != nil {
		return err
	}
	return nil
}
