package api

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/yourusername/bad-bets/internal/calculator"
)

const maxBodyBytes = 64 << 10

// ListCalculators returns the enabled calculators and their input fields.
func (h *Handler) ListCalculators(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, h.calculators.List())
}

// Calculate runs one calculator. The body is either a JSON object of field
// values (strings or numbers) or form values.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	kind := calculator.Kind(chi.URLParam(r, "kind"))

	inputs, err := readInputs(w, r)
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	calc, err := h.calculators.Calculate(r.Context(), kind, inputs)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, calc)
}

func readInputs(w http.ResponseWriter, r *http.Request) (calculator.Inputs, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		inputs := make(calculator.Inputs, len(r.PostForm))
		for k := range r.PostForm {
			inputs[k] = r.PostForm.Get(k)
		}
		return inputs, nil
	default:
		var raw map[string]interface{}
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		return toInputs(raw)
	}
}

// toInputs stringifies JSON field values. Numbers keep their literal form.
func toInputs(raw map[string]interface{}) (calculator.Inputs, error) {
	inputs := make(calculator.Inputs, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case string:
			inputs[k] = val
		case json.Number:
			inputs[k] = val.String()
		case float64:
			inputs[k] = strconv.FormatFloat(val, 'f', -1, 64)
		default:
			return nil, fmt.Errorf("field %q must be a string or number", k)
		}
	}
	return inputs, nil
}

// decodeStrict decodes a JSON body, rejecting unknown fields.
func decodeStrict(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
