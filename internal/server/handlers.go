package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/artwork/pkg/errors"
	"github.com/matzehuels/artwork/pkg/export"
	pkgio "github.com/matzehuels/artwork/pkg/io"
	"github.com/matzehuels/artwork/pkg/observability"
	"github.com/matzehuels/artwork/pkg/pipeline"
	"github.com/matzehuels/artwork/pkg/shape"
)

// =============================================================================
// Wire Types
// =============================================================================

// RenderRequest is the body of POST /v1/render. Format takes one format;
// Formats takes several. Both may be set.
type RenderRequest struct {
	Description *pkgio.Description `json:"description"`
	Format      string             `json:"format,omitempty"`
	Formats     []string           `json:"formats,omitempty"`
	Response    string             `json:"response,omitempty"`
	Configs     []export.Config    `json:"configs,omitempty"`
	Individual  bool               `json:"individual,omitempty"`
	Array       bool               `json:"array,omitempty"`
	Background  string             `json:"background,omitempty"`
	Scale       float64            `json:"scale,omitempty"`
	Refresh     bool               `json:"refresh,omitempty"`
}

// RenderResponse is the body of a successful render. A single-format
// request fills Outputs and Array; a multi-format request fills Artifacts,
// keyed by format name.
type RenderResponse struct {
	Outputs   []export.Output          `json:"outputs,omitempty"`
	Array     bool                     `json:"array,omitempty"`
	Artifacts map[string]export.Result `json:"artifacts,omitempty"`
	Cached    bool                     `json:"cached"`
}

// MethodInfo describes a registered shape method.
type MethodInfo struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Defaults    shape.Props `json:"defaults"`
}

// ErrorResponse is the body of a failed request.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries the error code and message.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			s.fail(w, r, http.StatusRequestEntityTooLarge,
				errors.Wrap(errors.ErrCodeInvalidInput, err, "request body exceeds %d bytes", s.maxBody))
			return
		}
		s.fail(w, r, http.StatusBadRequest, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	if err := validateRequest(&req); err != nil {
		s.fail(w, r, statusFor(err), err)
		return
	}

	opts := s.options(req)
	res, err := s.runner.Execute(r.Context(), req.Description, opts)
	if err != nil {
		s.fail(w, r, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusOK, newRenderResponse(res))
}

func (s *Server) handleMethods(w http.ResponseWriter, r *http.Request) {
	methods := s.runner.Methods()
	out := make([]MethodInfo, len(methods))
	for i, m := range methods {
		out[i] = MethodInfo{Name: m.Name, Description: m.Description, Defaults: m.Defaults}
	}
	writeJSON(w, http.StatusOK, out)
}

// =============================================================================
// Helpers
// =============================================================================

// validateRequest rejects requests the pipeline must not run.
func validateRequest(req *RenderRequest) error {
	if req.Description == nil {
		return errors.New(errors.ErrCodeInvalidInput, "description is required")
	}
	if req.Description.Document != "" {
		return errors.New(errors.ErrCodeInvalidPath, "document paths are not accepted over HTTP")
	}
	return req.Description.Validate()
}

// options maps a request onto pipeline options, filling raster settings
// from the server defaults.
func (s *Server) options(req RenderRequest) pipeline.Options {
	formats := req.Formats
	if req.Format != "" {
		formats = append([]string{req.Format}, formats...)
	}
	opts := pipeline.Options{
		Formats:     formats,
		Response:    req.Response,
		Configs:     req.Configs,
		Individual:  req.Individual,
		Array:       req.Array,
		Background:  req.Background,
		Scale:       req.Scale,
		Refresh:     req.Refresh,
		Supersample: s.defaults.Supersample,
		Logger:      s.logger,
		Source:      "http",
	}
	if opts.Background == "" {
		opts.Background = s.defaults.Background
	}
	if opts.Scale == 0 {
		opts.Scale = s.defaults.Scale
	}
	return opts
}

func newRenderResponse(res *pipeline.Result) RenderResponse {
	out := RenderResponse{Cached: res.CacheInfo.RenderHit}
	if len(res.Artifacts) == 1 {
		for _, a := range res.Artifacts {
			out.Outputs = a.Outputs
			out.Array = a.Array
		}
		return out
	}
	out.Artifacts = res.Artifacts
	return out
}

// statusFor maps an error to an HTTP status. Caller mistakes are 400.
func statusFor(err error) int {
	switch {
	case stderrors.Is(err, context.Canceled):
		return 499
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusNotImplemented
	case errors.IsValidation(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "status", status, "error", err)
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "status", status, "error", err)
	}

	code := string(errors.GetCode(err))
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}
	writeJSON(w, status, ErrorResponse{Error: ErrorBody{
		Code:    code,
		Message: errors.UserMessage(err),
	}})
}
