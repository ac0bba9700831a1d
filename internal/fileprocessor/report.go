package fileprocessor

import (
	"fmt"
	"path/filepath"

	"github.com/retroenv/cyacd2bin/internal/cyacd"
	"github.com/retroenv/cyacd2bin/internal/image"
)

// Report is the human-readable summary of a conversion, the formatted
// strings are consumed by the presentation layer.
type Report struct {
	SiliconID    string
	SiliconRev   string
	ChecksumType string
	Geometry     image.Geometry
	Arrays       []ArrayReport
	OutputPath   string
}

// ArrayReport describes the present rows of one flash array.
type ArrayReport struct {
	ID   byte
	Rows string
}

func buildReport(hdr cyacd.Header, img *image.Image, outputPath string) Report {
	report := Report{
		SiliconID:    fmt.Sprintf("0x%08X", hdr.SiliconID),
		SiliconRev:   fmt.Sprintf("%d", hdr.SiliconRev),
		ChecksumType: hdr.ChecksumType.String(),
		Geometry:     image.DefaultGeometry,
		OutputPath:   outputPath,
	}

	for _, arrayID := range img.Arrays() {
		report.Arrays = append(report.Arrays, ArrayReport{
			ID:   arrayID,
			Rows: img.Ranges(arrayID),
		})
	}

	if abs, err := filepath.Abs(outputPath); err == nil {
		report.OutputPath = abs
	}
	return report
}

func (r Report) print() {
	fmt.Printf("Silicon ID: %s\n", r.SiliconID)
	fmt.Printf("Silicon revision: %s\n", r.SiliconRev)
	fmt.Printf("Checksum type: %s\n", r.ChecksumType)
	fmt.Printf("Flash geometry: %d arrays with %d rows of %d bytes each\n",
		r.Geometry.Arrays, r.Geometry.RowsPerArray, r.Geometry.BytesPerRow)

	for _, array := range r.Arrays {
		fmt.Println(array.String())
	}

	fmt.Printf("Binary image written to %s\n", r.OutputPath)
}

func (a ArrayReport) String() string {
	return fmt.Sprintf("Array %d: Present rows %s", a.ID, a.Rows)
}
