// Package apiserver exposes automaton conversion over HTTP: submit a
// description in the bespoke tagged format and read back its DOT
// rendering and synthesized regular expression, each keyed by a
// conversion job ID. Routing, JSON response shape, and the panic/auth
// middleware chain are grounded on the teacher's server/api, server/result,
// and server/middle packages; since this API has no user/password model
// (only a single shared bearer secret), the per-user auth/session
// machinery from those packages is not reused.
package apiserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rstenholt/finautom/internal/automaton"
	"github.com/rstenholt/finautom/internal/history"
	"github.com/rstenholt/finautom/internal/loader"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// PathPrefix is the prefix under which every route in this package is
// mounted, mirroring server/api's PathPrefix convention.
const PathPrefix = "/api/v1"

// API holds the dependencies the conversion endpoints need.
type API struct {
	History     *history.Store
	Secret      []byte
	UnauthDelay time.Duration
	MacroConfig automaton.MacroStateConfig
}

// Routes builds a chi router serving every endpoint in this package
// under PathPrefix, wrapped in panic recovery and bearer-token auth.
func (a *API) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Route(PathPrefix, func(r chi.Router) {
		r.Use(RequireBearerAuth(a.Secret, a.UnauthDelay))
		r.Post("/automata", a.handleSubmit)
		r.Get("/automata/{id}/dot", a.handleGetDOT)
		r.Get("/automata/{id}/regex", a.handleGetRegex)
	})
	return r
}

func recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		defer recoverTo500(w, req)
		next.ServeHTTP(w, req)
	})
}

type submitRequest struct {
	// Type optionally overrides the <TYPE> tag found in Description.
	Type string `json:"type"`
	// Description is the full bespoke-format automaton description.
	Description string `json:"description"`
}

type submitResponse struct {
	ID          string   `json:"id"`
	Kind        string   `json:"kind"`
	DOT         string   `json:"dot"`
	Regex       string   `json:"regex,omitempty"`
	Diagnostics []string `json:"diagnostics,omitempty"`
}

func (a *API) handleSubmit(w http.ResponseWriter, req *http.Request) {
	var body submitRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, req, http.StatusBadRequest, "malformed JSON request body", err)
		return
	}

	src := body.Description
	if body.Type != "" {
		src = forceType(src, body.Type)
	}

	parsed, diags := loader.Load(src)

	diagMsgs := make([]string, 0, len(diags))
	for _, d := range diags {
		diagMsgs = append(diagMsgs, d.Error())
	}

	rec, err := a.History.Record(req.Context(), parsed.Variant().String(), len(parsed.States()))
	if err != nil {
		writeError(w, req, http.StatusInternalServerError, "could not record conversion job", err)
		return
	}

	target := parsed
	if parsed.Variant() != automaton.DFA {
		dfa, derr := parsed.ToDFAWithConfig(a.MacroConfig)
		if derr != nil {
			writeError(w, req, http.StatusBadRequest, "could not convert to an equivalent DFA", derr)
			return
		}
		target = dfa
	}

	regex, rerr := target.ToRegex()
	if rerr != nil {
		writeError(w, req, http.StatusBadRequest, "could not synthesize a regular expression", rerr)
		return
	}

	if err := a.History.SetOutputs(req.Context(), rec.ID, target.DOT(), regex); err != nil {
		writeError(w, req, http.StatusInternalServerError, "could not store conversion outputs", err)
		return
	}

	writeJSON(w, req, http.StatusCreated, submitResponse{
		ID:          rec.ID.String(),
		Kind:        parsed.Variant().String(),
		DOT:         target.DOT(),
		Regex:       regex,
		Diagnostics: diagMsgs,
	})
}

type dotResponse struct {
	ID  string `json:"id"`
	DOT string `json:"dot"`
}

func (a *API) handleGetDOT(w http.ResponseWriter, req *http.Request) {
	id, err := requireIDParam(req)
	if err != nil {
		writeError(w, req, http.StatusBadRequest, "invalid conversion job id", err)
		return
	}

	rec, err := a.History.Get(req.Context(), id)
	if err != nil {
		if err == history.ErrNotFound {
			writeError(w, req, http.StatusNotFound, "no such conversion job", err)
			return
		}
		writeError(w, req, http.StatusInternalServerError, "could not look up conversion job", err)
		return
	}

	writeJSON(w, req, http.StatusOK, dotResponse{ID: rec.ID.String(), DOT: rec.DOT})
}

type regexResponse struct {
	ID    string `json:"id"`
	Regex string `json:"regex"`
}

func (a *API) handleGetRegex(w http.ResponseWriter, req *http.Request) {
	id, err := requireIDParam(req)
	if err != nil {
		writeError(w, req, http.StatusBadRequest, "invalid conversion job id", err)
		return
	}

	rec, err := a.History.Get(req.Context(), id)
	if err != nil {
		if err == history.ErrNotFound {
			writeError(w, req, http.StatusNotFound, "no such conversion job", err)
			return
		}
		writeError(w, req, http.StatusInternalServerError, "could not look up conversion job", err)
		return
	}

	writeJSON(w, req, http.StatusOK, regexResponse{ID: rec.ID.String(), Regex: rec.Regex})
}

func requireIDParam(req *http.Request) (uuid.UUID, error) {
	idStr := chi.URLParam(req, "id")
	if idStr == "" {
		return uuid.UUID{}, fmt.Errorf("no id given")
	}
	return uuid.Parse(idStr)
}

// forceType replaces the body of the first <TYPE>...</TYPE> tag found in
// src with override, or prepends a <TYPE> tag if none is present.
func forceType(src, override string) string {
	const open, close = "<TYPE>", "</TYPE>"
	start := strings.Index(src, open)
	if start < 0 {
		return open + override + close + src
	}
	start += len(open)
	end := strings.Index(src[start:], close)
	if end < 0 {
		return src
	}
	return src[:start] + override + src[start+end:]
}
