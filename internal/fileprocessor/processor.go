// Package fileprocessor handles file loading and conversion operations
package fileprocessor

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/retroenv/cyacd2bin/internal/cyacd"
	"github.com/retroenv/cyacd2bin/internal/emitter"
	"github.com/retroenv/cyacd2bin/internal/image"
	"github.com/retroenv/cyacd2bin/internal/options"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile handles the complete conversion workflow for one input file:
// parse the cyacd source into a flash image, emit the binary output and
// print the presence summary. A single bad row aborts the conversion,
// nothing is written in that case.
func ProcessFile(logger *log.Logger, opts options.Program) error {
	if err := checkDistinctFiles(opts.Input, opts.Output); err != nil {
		return err
	}

	hdr, img, err := parseInput(opts.Input)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", opts.Input, err)
	}

	logger.Debug("Parsed firmware file",
		log.String("file", opts.Input),
		log.Int("rows", img.Len()),
	)

	if err := writeOutput(opts.Output, hdr, img); err != nil {
		return fmt.Errorf("writing %s: %w", opts.Output, err)
	}

	if opts.Verify {
		if err := verifyOutput(opts.Output, hdr, img); err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
		logger.Info("Verification successful")
	}

	if !opts.Quiet {
		buildReport(hdr, img, opts.Output).print()
	}
	return nil
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// GenerateOutputFilename generates output filename for a given input file
func GenerateOutputFilename(inputFile string) string {
	return inputFile + ".bin"
}

// parseInput reads a cyacd file into a flash image. The input file is
// closed on all exit paths.
func parseInput(path string) (cyacd.Header, *image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return cyacd.Header{}, nil, fmt.Errorf("opening file: %w", err)
	}
	defer func() { _ = file.Close() }()

	reader := cyacd.NewReader(file)
	hdr, err := reader.Header()
	if err != nil {
		return cyacd.Header{}, nil, err
	}

	img := image.New()
	for {
		row, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return cyacd.Header{}, nil, err
		}
		if err := img.Insert(row); err != nil {
			return cyacd.Header{}, nil, err
		}
	}

	return hdr, img, nil
}

func writeOutput(path string, hdr cyacd.Header, img *image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}

	if err := emitter.Emit(file, hdr, img); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return err
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("closing file: %w", err)
	}
	return nil
}

// verifyOutput re-parses the emitted binary and compares it against the
// in-memory image. Absent rows must never materialize in the output.
func verifyOutput(path string, hdr cyacd.Header, img *image.Image) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer func() { _ = file.Close() }()

	parsedHdr, parsed, err := emitter.Parse(file)
	if err != nil {
		return fmt.Errorf("re-parsing output: %w", err)
	}

	if parsedHdr != hdr {
		return fmt.Errorf("header mismatch: got %+v, expected %+v", parsedHdr, hdr)
	}
	if parsed.Len() != img.Len() {
		return fmt.Errorf("row count mismatch: got %d, expected %d", parsed.Len(), img.Len())
	}

	for _, arrayID := range img.Arrays() {
		for _, rowNum := range img.RowNumbers(arrayID) {
			want, _ := img.Payload(arrayID, rowNum)
			got, ok := parsed.Payload(arrayID, rowNum)
			if !ok {
				return fmt.Errorf("array %d row %d missing in output", arrayID, rowNum)
			}
			if !bytes.Equal(want, got) {
				return fmt.Errorf("array %d row %d payload mismatch", arrayID, rowNum)
			}
		}
	}
	return nil
}

// checkDistinctFiles refuses to overwrite the input file with the output.
func checkDistinctFiles(input, output string) error {
	inputInfo, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("reading file info of %s: %w", input, err)
	}
	outputInfo, err := os.Stat(output)
	if err != nil {
		// A missing output file is created later.
		return nil
	}
	if os.SameFile(inputInfo, outputInfo) {
		return fmt.Errorf("input and output must be different files: %s", input)
	}
	return nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("cyacd2bin", log.String("version", buildinfo.Version(version, commit, date)))
}
