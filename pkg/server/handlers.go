package server

import (
	stderrors "errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/matzehuels/c4dgml/pkg/buildinfo"
	"github.com/matzehuels/c4dgml/pkg/errors"
	"github.com/matzehuels/c4dgml/pkg/pipeline"
	"github.com/matzehuels/c4dgml/pkg/workspace"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Info: buildinfo.Get()})
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	opts, err := convertOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{
				Code:    errors.ErrCodeInvalidInput,
				Message: "request body exceeds " + strconv.FormatInt(tooLarge.Limit, 10) + " bytes",
			})
			return
		}
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body"))
		return
	}
	if len(body) == 0 {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "request body is empty"))
		return
	}
	opts.Data = body
	if err := opts.ValidateAndSetDefaults(); err != nil {
		writeError(w, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		if statusFor(err) >= http.StatusInternalServerError {
			s.logger.Error("convert failed", "request_id", w.Header().Get(RequestIDHeader), "err", err)
		}
		writeError(w, err)
		return
	}

	format := opts.Formats[0]
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("X-Workspace-Hash", result.WorkspaceHash)
	w.Header().Set("X-Cache", cacheStatus(result.CacheInfo))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// convertOptions maps query parameters onto pipeline options.
func convertOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		InputFormat:       q.Get("input"),
		DefaultBackground: q.Get("default_background"),
	}

	if f := q.Get("format"); f != "" {
		opts.Formats = []string{f}
	} else {
		opts.Formats = []string{pipeline.FormatDGML}
	}
	if opts.InputFormat == "" && strings.Contains(r.Header.Get("Content-Type"), "yaml") {
		opts.InputFormat = workspace.FormatYAML
	}
	if v := q.Get("views"); v != "" {
		opts.Views = strings.Split(v, ",")
	}
	if v := q.Get("max_label_length"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "max_label_length must be an integer, got %q", v)
		}
		opts.MaxLabelLength = n
	}
	if v := q.Get("detailed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "detailed must be a boolean, got %q", v)
		}
		opts.Detailed = b
	}
	return opts, nil
}

func cacheStatus(info pipeline.CacheInfo) string {
	if info.ProjectHit && info.RenderHit {
		return "hit"
	}
	if info.ProjectHit || info.RenderHit {
		return "partial"
	}
	return "miss"
}
