// Package options contains the program options.
package options

// Program options of the converter.
type Program struct {
	Input  string
	Output string
	Batch  string

	Verify bool
	Debug  bool
	Quiet  bool
}
