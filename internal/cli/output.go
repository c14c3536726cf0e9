package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/c4dgml/pkg/errors"
	"github.com/matzehuels/c4dgml/pkg/pipeline"
)

// artifactWriteParams describes where rendered artifacts go.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string // workspace path, used to derive output names
	output    string // explicit output path or base path
}

// writeArtifacts writes one file per format and returns the paths written.
// A single format with an explicit output is written to that exact path;
// otherwise files are named <base><ext>. No file is written when any target
// is the input workspace itself.
func writeArtifacts(p artifactWriteParams) ([]string, error) {
	targets := make(map[string]string, len(p.formats))
	if len(p.formats) == 1 && p.output != "" && !isFormatExt(filepath.Ext(p.output)) {
		targets[p.formats[0]] = p.output
	} else {
		base := basePath(p.output, p.input)
		for _, format := range p.formats {
			targets[format] = base + pipeline.Extensions[format]
		}
	}
	for _, format := range p.formats {
		if samePath(targets[format], p.input) {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"%s output would overwrite the workspace %s; choose another path with -o", format, p.input)
		}
	}

	var paths []string
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			return paths, fmt.Errorf("no %s artifact produced", format)
		}
		if err := writeFile(targets[format], data); err != nil {
			return paths, err
		}
		paths = append(paths, targets[format])
	}
	return paths, nil
}

// samePath reports whether a and b name the same file. Paths that cannot be
// made absolute are compared after cleaning.
func samePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// basePath derives the output base path. An empty output uses the input path
// without its extension; a known format extension on output is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	if ext := filepath.Ext(output); isFormatExt(ext) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func isFormatExt(ext string) bool {
	for _, e := range pipeline.Extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
