package image

// Geometry describes the flash layout of the target device family. It is
// used for reporting presence ranges only and never enforced as a parsing
// limit.
type Geometry struct {
	Arrays       int
	RowsPerArray int
	BytesPerRow  int
}

// DefaultGeometry is the flash layout of the PSoC 3 device family.
var DefaultGeometry = Geometry{
	Arrays:       2,
	RowsPerArray: 512,
	BytesPerRow:  256,
}
