package server

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	lewiserrors "github.com/lewisviz/lewis/pkg/errors"
	"github.com/lewisviz/lewis/pkg/molecule"
	"github.com/lewisviz/lewis/pkg/pipeline"
)

// contentTypes maps output formats to their MIME types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:   "image/svg+xml",
	pipeline.FormatPNG:   "image/png",
	pipeline.FormatPDF:   "application/pdf",
	pipeline.FormatDOT:   "text/vnd.graphviz",
	pipeline.FormatGraph: "image/svg+xml",
	pipeline.FormatJSON:  "application/json",
}

// renderResponse is the JSON envelope returned for multi-format requests.
type renderResponse struct {
	MoleculeHash string            `json:"molecule_hash"`
	AtomCount    int               `json:"atom_count"`
	BondCount    int               `json:"bond_count"`
	Cycle        []string          `json:"cycle,omitempty"`
	Cached       bool              `json:"cached"`
	Duration     string            `json:"duration"`
	Artifacts    map[string]string `json:"artifacts"` // base64 by format
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleParse parses notation and returns the molecule document.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		s.writeError(w, http.StatusBadRequest, lewiserrors.New(lewiserrors.ErrCodeInvalidInput, "malformed request body"))
		return
	}

	m, err := s.runner.Parse(r.Context(), opts)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := molecule.WriteMolecule(m, w); err != nil {
		s.logger.Error("write response", "err", err)
	}
}

// handleRender runs the full pipeline. When exactly one format is requested
// the raw artifact is returned with its MIME type; otherwise a JSON envelope
// with base64 artifacts is returned.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		s.writeError(w, http.StatusBadRequest, lewiserrors.New(lewiserrors.ErrCodeInvalidInput, "malformed request body"))
		return
	}

	start := time.Now()
	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	if len(result.Artifacts) == 1 {
		for format, data := range result.Artifacts {
			w.Header().Set("Content-Type", contentTypes[format])
			_, _ = w.Write(data)
			return
		}
	}

	resp := renderResponse{
		MoleculeHash: result.MoleculeHash,
		AtomCount:    result.Stats.AtomCount,
		BondCount:    result.Stats.BondCount,
		Cycle:        result.Cycle,
		Cached:       result.CacheInfo.RenderHit,
		Duration:     time.Since(start).Round(time.Millisecond).String(),
		Artifacts:    make(map[string]string, len(result.Artifacts)),
	}
	for format, data := range result.Artifacts {
		resp.Artifacts[format] = base64.StdEncoding.EncodeToString(data)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("write response", "err", err)
	}
}

// writeError serializes an error response with its code.
func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Code:    string(lewiserrors.GetCode(err)),
		Message: lewiserrors.UserMessage(err),
	})
}

// statusFor maps error codes to HTTP statuses. Anything the caller can fix
// by changing the request is a 400; the rest is a 500.
func statusFor(err error) int {
	switch lewiserrors.GetCode(err) {
	case lewiserrors.ErrCodeInternal:
		return http.StatusInternalServerError
	case lewiserrors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}
