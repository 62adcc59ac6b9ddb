package server

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/energydiagram/pkg/buildinfo"
	"github.com/matzehuels/energydiagram/pkg/errors"
	docio "github.com/matzehuels/energydiagram/pkg/io"
	"github.com/matzehuels/energydiagram/pkg/pipeline"
)

// contentTypes maps output formats to response media types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
}

// documentFormats maps request media types to document formats.
var documentFormats = map[string]docio.Format{
	"":                   docio.FormatJSON,
	"application/json":   docio.FormatJSON,
	"application/toml":   docio.FormatTOML,
	"text/toml":          docio.FormatTOML,
	"application/yaml":   docio.FormatYAML,
	"application/x-yaml": docio.FormatYAML,
	"text/yaml":          docio.FormatYAML,
}

// =============================================================================
// Responses
// =============================================================================

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// Stats reports pipeline sizes and stage timings in milliseconds.
type Stats struct {
	Levels   int     `json:"levels"`
	Labels   int     `json:"labels"`
	Links    int     `json:"links"`
	BuildMS  float64 `json:"build_ms"`
	LayoutMS float64 `json:"layout_ms"`
	RenderMS float64 `json:"render_ms"`
}

// LayoutResponse is the body of POST /v1/layout.
type LayoutResponse struct {
	ID           string          `json:"id"`
	DocumentHash string          `json:"document_hash"`
	Cached       bool            `json:"cached"`
	Stats        Stats           `json:"stats"`
	Layout       json.RawMessage `json:"layout"`
}

// ValidateResponse is the body of a successful POST /v1/validate.
type ValidateResponse struct {
	Valid bool  `json:"valid"`
	Stats Stats `json:"stats"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	resp := ErrorResponse{
		Error:     http.StatusText(status),
		Code:      string(errors.GetCode(err)),
		Message:   errors.UserMessage(err),
		RequestID: RequestIDFromContext(r.Context()),
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err, "request_id", resp.RequestID)
		resp.Message = "internal error"
	}
	s.respondJSON(w, status, resp)
}

// statusFor maps an error to its HTTP status: oversized bodies are 413,
// validation failures 400, unsupported media 415, anything else 500.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case stderrors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusUnsupportedMediaType
	}
	return http.StatusInternalServerError
}

func statsOf(r *pipeline.Result) Stats {
	ms := func(d time.Duration) float64 { return float64(d.Microseconds()) / 1000 }
	return Stats{
		Levels:   r.Stats.Levels,
		Labels:   r.Stats.Labels,
		Links:    r.Stats.Links,
		BuildMS:  ms(r.Stats.BuildTime),
		LayoutMS: ms(r.Stats.LayoutTime),
		RenderMS: ms(r.Stats.RenderTime),
	}
}

// =============================================================================
// Request Parsing
// =============================================================================

// readDocument decodes the request body in the format named by its
// Content-Type.
func (s *Server) readDocument(w http.ResponseWriter, r *http.Request) (*docio.Document, error) {
	mediaType := ""
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return nil, errors.New(errors.ErrCodeUnsupported, "malformed content type %q", ct)
		}
		mediaType = mt
	}
	f, ok := documentFormats[mediaType]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported content type %q", mediaType)
	}
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	return docio.Read(body, f)
}

// renderOptions reads pipeline options from the query string. format
// defaults to svg.
func renderOptions(q url.Values) (pipeline.Options, error) {
	opts := pipeline.Options{
		Formats:    []string{q.Get("format")},
		Style:      q.Get("style"),
		Rasterizer: q.Get("rasterizer"),
		Unit:       q.Get("unit"),
	}
	if opts.Formats[0] == "" {
		opts.Formats[0] = pipeline.FormatSVG
	}

	var err error
	parseFloat := func(key string, dst *float64) {
		if v := q.Get(key); v != "" && err == nil {
			if *dst, err = strconv.ParseFloat(v, 64); err != nil {
				err = errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q", key, v)
				return
			}
			err = errors.ValidateFinite(key, *dst)
		}
	}
	parseBool := func(key string, dst *bool) {
		if v := q.Get(key); v != "" && err == nil {
			if *dst, err = strconv.ParseBool(v); err != nil {
				err = errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q", key, v)
			}
		}
	}
	parseFloat("scale", &opts.Scale)
	parseFloat("width", &opts.Width)
	parseFloat("height", &opts.Height)
	parseBool("refresh", &opts.Refresh)
	parseBool("detailed", &opts.Detailed)
	if v := q.Get("seed"); v != "" && err == nil {
		if opts.Seed, err = strconv.ParseUint(v, 10, 64); err != nil {
			err = errors.New(errors.ErrCodeInvalidInput, "invalid seed: %q", v)
		}
	}
	if err == nil {
		err = opts.ValidateAndSetDefaults()
	}
	if err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, HealthResponse{Status: "ok", Time: time.Now().UTC().Format(time.RFC3339)})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := renderOptions(r.URL.Query())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	doc, err := s.readDocument(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	opts.Logger = s.logger.With("request_id", RequestIDFromContext(r.Context()))

	result, err := s.runner.Execute(r.Context(), doc, opts)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	format := opts.Formats[0]
	h := w.Header()
	h.Set("Content-Type", contentTypes[format])
	h.Set("X-Document-Hash", result.DocumentHash)
	h.Set("X-Cache", cacheStatus(result.CacheInfo.RenderHit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	doc, err := s.readDocument(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	result, err := s.runner.Execute(r.Context(), doc, pipeline.Options{
		Formats: []string{pipeline.FormatJSON},
		Logger:  s.logger.With("request_id", RequestIDFromContext(r.Context())),
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, LayoutResponse{
		ID:           uuid.NewString(),
		DocumentHash: result.DocumentHash,
		Cached:       result.CacheInfo.RenderHit,
		Stats:        statsOf(result),
		Layout:       result.Artifacts[pipeline.FormatJSON],
	})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	doc, err := s.readDocument(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	start := time.Now()
	d, _, err := pipeline.Build(r.Context(), doc)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	built := time.Since(start)
	if _, err := pipeline.Layout(r.Context(), d); err != nil {
		s.respondError(w, r, err)
		return
	}
	st := d.Stats()
	s.respondJSON(w, http.StatusOK, ValidateResponse{
		Valid: true,
		Stats: Stats{
			Levels:   st.Levels,
			Labels:   st.Labels,
			Links:    st.Links,
			BuildMS:  float64(built.Microseconds()) / 1000,
			LayoutMS: float64((time.Since(start) - built).Microseconds()) / 1000,
		},
	})
}

func (s *Server) handlePathway(w http.ResponseWriter, r *http.Request) {
	opts, err := renderOptions(r.URL.Query())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	format := opts.Formats[0]
	if format == pipeline.FormatJSON {
		s.respondError(w, r, errors.New(errors.ErrCodeInvalidFormat, "pathway does not support %s", format))
		return
	}
	doc, err := s.readDocument(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	d, _, err := pipeline.Build(r.Context(), doc)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	data, err := pipeline.RenderPathway(r.Context(), d, opts, format)
	if err != nil {
		s.respondError(w, r, fmt.Errorf("pathway: %w", err))
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
