package remote

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
)

const maxBodyBytes = 1 << 20

// Opener resolves a collection by name for the HTTP server.
type Opener func(name string) (Collection, error)

type server struct {
	open Opener
	log  *slog.Logger
}

// NewRouter exposes the collections returned by open over HTTP:
//
//	GET    /health
//	GET    /collections/{name}/documents[?field=f&value=<json>]
//	POST   /collections/{name}/documents
//	PATCH  /collections/{name}/documents/{key}
//	DELETE /collections/{name}/documents/{key}
func NewRouter(open Opener, log *slog.Logger) *mux.Router {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &server{open: open, log: log.With(slog.String("component", "server"))}

	r := mux.NewRouter()
	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	r.HandleFunc("/collections/{name}/documents", s.list).Methods(http.MethodGet)
	r.HandleFunc("/collections/{name}/documents", s.add).Methods(http.MethodPost)
	r.HandleFunc("/collections/{name}/documents/{key}", s.update).Methods(http.MethodPatch)
	r.HandleFunc("/collections/{name}/documents/{key}", s.remove).Methods(http.MethodDelete)
	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) collection(w http.ResponseWriter, r *http.Request) (Collection, bool) {
	name := mux.Vars(r)["name"]
	c, err := s.open(name)
	if err != nil {
		s.log.Warn("open collection failed", slog.String("collection", name), slog.Any("err", err))
		writeError(w, http.StatusBadRequest, err)
		return nil, false
	}
	return c, true
}

func (s *server) list(w http.ResponseWriter, r *http.Request) {
	c, ok := s.collection(w, r)
	if !ok {
		return
	}
	var (
		docs []Document
		err  error
	)
	if field := r.URL.Query().Get("field"); field != "" {
		var value any
		if err := json.Unmarshal([]byte(r.URL.Query().Get("value")), &value); err != nil {
			writeError(w, http.StatusBadRequest, errors.New("value must be json"))
			return
		}
		docs, err = c.Where(field, value).Get(r.Context())
	} else {
		docs, err = c.Get(r.Context())
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

func (s *server) add(w http.ResponseWriter, r *http.Request) {
	c, ok := s.collection(w, r)
	if !ok {
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if !json.Valid(body) {
		writeError(w, http.StatusBadRequest, errors.New("body must be json"))
		return
	}
	key, err := c.Add(r.Context(), json.RawMessage(body))
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"key": key})
}

func (s *server) update(w http.ResponseWriter, r *http.Request) {
	c, ok := s.collection(w, r)
	if !ok {
		return
	}
	fields := make(map[string]any)
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := c.Update(r.Context(), mux.Vars(r)["key"], fields); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) remove(w http.ResponseWriter, r *http.Request) {
	c, ok := s.collection(w, r)
	if !ok {
		return
	}
	if err := c.Delete(r.Context(), mux.Vars(r)["key"]); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) fail(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	s.log.Error("collection call failed", slog.Any("err", err))
	writeError(w, http.StatusInternalServerError, err)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
