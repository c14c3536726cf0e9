package pipeline

import (
	"context"
	"os"
	"time"

	"github.com/matzehuels/c4dgml/pkg/cache"
	"github.com/matzehuels/c4dgml/pkg/errors"
	"github.com/matzehuels/c4dgml/pkg/model"
	"github.com/matzehuels/c4dgml/pkg/observability"
	"github.com/matzehuels/c4dgml/pkg/workspace"
)

// ReadSource returns the workspace document bytes and their content hash.
func ReadSource(opts Options) ([]byte, string, error) {
	data := opts.Data
	if data == nil {
		var err error
		data, err = os.ReadFile(opts.Path)
		if os.IsNotExist(err) {
			return nil, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "workspace %s not found", opts.Path)
		}
		if err != nil {
			return nil, "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read workspace %s", opts.Path)
		}
	}
	return data, cache.Hash(data), nil
}

// Load parses a workspace document.
func Load(ctx context.Context, data []byte, opts Options) (*model.Workspace, error) {
	source := opts.Path
	if source == "" {
		source = "<request>"
	}

	observability.Pipeline().OnLoadStart(ctx, source)
	start := time.Now()

	ws, err := workspace.Parse(data, opts.InputFormat)

	elements := 0
	if ws != nil {
		elements = ws.Model.ElementCount()
	}
	observability.Pipeline().OnLoadComplete(ctx, source, elements, time.Since(start), err)

	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidWorkspace, err, "load workspace %s", source)
	}
	return ws, nil
}
