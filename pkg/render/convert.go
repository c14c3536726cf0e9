package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ConverterBinary is the librsvg command used for PDF and PNG output.
const ConverterBinary = "rsvg-convert"

// ToPDF converts SVG to PDF with rsvg-convert.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return convert(ctx, svg, "-f", "pdf")
}

// ToPNG converts SVG to PNG with rsvg-convert. A scale of 2.0 doubles the
// resolution; values <= 0 mean 1.0.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	return convert(ctx, svg, "-f", "png", "-z", strconv.FormatFloat(scale, 'f', -1, 64))
}

// Available reports whether rsvg-convert is on PATH.
func Available() bool {
	_, err := exec.LookPath(ConverterBinary)
	return err == nil
}

func convert(ctx context.Context, svg []byte, args ...string) ([]byte, error) {
	if !Available() {
		return nil, fmt.Errorf("%s not found: install librsvg for PDF/PNG output", ConverterBinary)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, ConverterBinary, args...)
	cmd.Stdin = bytes.NewReader(svg)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", ConverterBinary, err, msg)
		}
		return nil, fmt.Errorf("%s: %w", ConverterBinary, err)
	}
	return stdout.Bytes(), nil
}
