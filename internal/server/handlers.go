package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/mondrian/pkg/buildinfo"
	errs "github.com/matzehuels/mondrian/pkg/errors"
	"github.com/matzehuels/mondrian/pkg/observability"
	"github.com/matzehuels/mondrian/pkg/pipeline"
	"github.com/matzehuels/mondrian/pkg/seed"
)

// SeedHeader reports the seed a frame was generated from.
const SeedHeader = "X-Mondrian-Seed"

// maxPixels bounds the edge length of PNG responses.
const maxPixels = 4096

type healthBody struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthBody{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleSeed(w http.ResponseWriter, r *http.Request) {
	v, err := seed.Random()
	if err != nil {
		s.writeError(w, r, errs.Wrap(errs.ErrCodeInternal, err, "draw seed"))
		return
	}
	observability.Seed().OnReseed(r.Context(), "http", v)
	writeJSON(w, http.StatusOK, map[string]uint64{"seed": v})
}

func (s *Server) handleMondrian(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}

	opts, explicit, err := s.requestOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}
	if err := checkRequestLimits(opts, format); err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", pipeline.ContentTypes[format])
	h.Set(SeedHeader, strconv.FormatUint(opts.Seed, 10))
	if explicit {
		h.Set("Cache-Control", "public, max-age=31536000, immutable")
	} else {
		h.Set("Cache-Control", "no-store")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// requestOptions merges query parameters over the configured defaults.
// explicit reports whether the caller chose the seed.
func (s *Server) requestOptions(r *http.Request) (pipeline.Options, bool, error) {
	q := r.URL.Query()

	var v uint64
	explicit := q.Has("seed")
	if explicit {
		parsed, err := errs.ParseSeed(q.Get("seed"))
		if err != nil {
			return pipeline.Options{}, false, err
		}
		v = parsed
	} else {
		drawn, err := seed.Random()
		if err != nil {
			return pipeline.Options{}, false, errs.Wrap(errs.ErrCodeInternal, err, "draw seed")
		}
		observability.Seed().OnReseed(r.Context(), "http", drawn)
		v = drawn
	}

	opts := s.cfg.Defaults.Options(v)

	if raw := q.Get("size"); raw != "" {
		size, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return opts, explicit, errs.New(errs.ErrCodeInvalidCanvas, "invalid size %q", raw)
		}
		opts.Size = size
	}
	if raw := q.Get("step"); raw != "" {
		step, err := strconv.Atoi(raw)
		if err != nil {
			return opts, explicit, errs.New(errs.ErrCodeInvalidStep, "invalid step %q", raw)
		}
		opts.Step = step
	}
	if raw := q.Get("strategy"); raw != "" {
		opts.Strategy = raw
	}
	if raw := q.Get("stroke"); raw != "" {
		stroke, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return opts, explicit, errs.New(errs.ErrCodeInvalidInput, "invalid stroke %q", raw)
		}
		opts.StrokeWidth = pipeline.Float(stroke)
	}
	if raw := q.Get("scale"); raw != "" {
		scale, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return opts, explicit, errs.New(errs.ErrCodeInvalidInput, "invalid scale %q", raw)
		}
		opts.Scale = scale
	}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, explicit, err
	}
	return opts, explicit, nil
}

// checkRequestLimits rejects requests whose cost is unbounded: the legacy
// strategy at small steps and very large rasters.
func checkRequestLimits(opts pipeline.Options, format string) error {
	if opts.ExpensiveLegacy() {
		return errs.New(errs.ErrCodeInvalidStrategy,
			"legacy strategy requires step >= %d", pipeline.LegacyStepWarning)
	}
	if format == pipeline.FormatPNG && opts.Size*opts.Scale > maxPixels {
		return errs.New(errs.ErrCodeInvalidCanvas,
			"png output limited to %d pixels per side", maxPixels)
	}
	return nil
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code      errs.Code `json:"code"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id,omitempty"`
}

// writeError maps INVALID_* codes to 400 and everything else to 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	code := errs.GetCode(err)
	switch {
	case errs.IsInvalid(err):
		status = http.StatusBadRequest
	case code == "":
		code = errs.ErrCodeInternal
	}

	if status >= http.StatusInternalServerError {
		observability.HTTP().OnError(r.Context(), r.Method, routePattern(r), err)
		s.logger.Error("request failed", "error", err, "request_id", RequestIDFrom(r.Context()))
	}

	writeJSON(w, status, errorBody{Error: errorDetail{
		Code:      code,
		Message:   errs.UserMessage(err),
		RequestID: RequestIDFrom(r.Context()),
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
