package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/satoh-er/eui_calc_go/casefile"
	"github.com/satoh-er/eui_calc_go/energycalc"
	"github.com/satoh-er/eui_calc_go/refdata"
)

// Request bodies larger than this are rejected.
const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every failed request. Element and Field are
// set for validation failures.
type ErrorResponse struct {
	Element string `json:"element,omitempty"`
	Field   string `json:"field,omitempty"`
	Error   string `json:"error"`
}

var validationErrors = []error{
	energycalc.ErrInvalidSurfaceResistance,
	energycalc.ErrInvalidConstructionType,
	energycalc.ErrInvalidLobbyType,
	energycalc.ErrInvalidVentilationType,
	energycalc.ErrInvalidOrientation,
	energycalc.ErrInvalidNumber,
	energycalc.ErrInvalidParameter,
	energycalc.ErrZeroDivision,
	energycalc.ErrOutOfRange,
	energycalc.ErrUnknownCity,
	energycalc.ErrUnknownMaterial,
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"tables_version": refdata.Version,
	})
}

func (s *Server) listCities(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.tables.Cities())
}

func (s *Server) listMaterials(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.tables.Catalogue())
}

func (s *Server) evaluate(w http.ResponseWriter, r *http.Request) {
	var f casefile.File
	if !decode(w, r, &f) {
		return
	}
	p, err := f.Params(s.tables)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	res, err := s.engine.Evaluate(p)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) compare(w http.ResponseWriter, r *http.Request) {
	var pair casefile.Pair
	if !decode(w, r, &pair) {
		return
	}
	base, err := pair.Base.Params(s.tables)
	if err != nil {
		s.writeEngineError(w, fmt.Errorf("%s: %w", energycalc.CaseBase, err))
		return
	}
	proposed, err := pair.Proposed.Params(s.tables)
	if err != nil {
		s.writeEngineError(w, fmt.Errorf("%s: %w", energycalc.CaseProposed, err))
		return
	}
	c, err := s.engine.Compare(r.Context(), base, proposed)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid json: %v", err)})
		return false
	}
	return true
}

func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	resp := ErrorResponse{Error: err.Error()}
	var pe *energycalc.ParamError
	if errors.As(err, &pe) {
		resp.Element, resp.Field = pe.Element, pe.Field
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			writeJSON(w, http.StatusUnprocessableEntity, resp)
			return
		}
	}
	s.log.Error("evaluation failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
