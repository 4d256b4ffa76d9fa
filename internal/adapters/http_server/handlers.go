package httpserver

import (
	"crypto/sha1"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"goodfood/internal/app"
	"goodfood/internal/domain"
)

type Handlers struct {
	Proj  *app.Projection
	Gw    *app.Gateway
	Posts *app.PostService

	// Static admin credential pair checked via basic auth. Client-side-gate
	// grade only; an empty password disables admin mutations entirely.
	AdminUser string
	AdminPass string
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Get("/v1/places", h.listPlaces)
	s.mux.Post("/v1/places", h.addPlace)
	s.mux.Post("/v1/places/{id}/checkin", h.checkIn)
	s.mux.Patch("/v1/places/{id}", h.editPlace)
	s.mux.Delete("/v1/places/{id}", h.deletePlace)

	s.mux.Get("/v1/stats", h.stats)
	s.mux.Get("/v1/export", h.export)
	s.mux.Post("/v1/import", h.importPlaces)

	s.mux.Get("/v1/posts", h.listPosts)
	s.mux.Post("/v1/posts", h.addPost)
	s.mux.Post("/v1/posts/{id}/reply", h.replyPost)
	s.mux.Delete("/v1/posts/{id}", h.deletePost)
}

// session builds the explicit session state from basic auth. Constant-time
// compare, though the credential is a convenience gate, not a secret of value.
func (h *Handlers) session(r *http.Request) domain.Session {
	if h.AdminPass == "" {
		return domain.Session{}
	}
	u, p, ok := r.BasicAuth()
	if !ok {
		return domain.Session{}
	}
	userOK := subtle.ConstantTimeCompare([]byte(u), []byte(h.AdminUser)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(p), []byte(h.AdminPass)) == 1
	return domain.Session{Admin: userOK && passOK}
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeErr maps domain sentinels onto problem responses.
func writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeProblem(w, http.StatusForbidden, "Forbidden", err.Error())
	case errors.Is(err, domain.ErrBadImport), errors.Is(err, domain.ErrNameRequired),
		errors.Is(err, domain.ErrInvalidRating), errors.Is(err, domain.ErrBadPost):
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
	case errors.Is(err, domain.ErrRemoteImport):
		writeProblem(w, http.StatusConflict, "Conflict", err.Error())
	default:
		writeProblem(w, http.StatusInternalServerError, "Internal Error", err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeCacheable(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func placeID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// ---- places ----

func (h *Handlers) listPlaces(w http.ResponseWriter, r *http.Request) {
	writeCacheable(w, r, h.Proj.Places())
}

func (h *Handlers) stats(w http.ResponseWriter, r *http.Request) {
	writeCacheable(w, r, h.Proj.Stats())
}

func (h *Handlers) addPlace(w http.ResponseWriter, r *http.Request) {
	var d app.PlaceDraft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "invalid place payload")
		return
	}
	p, err := h.Gw.AddCustom(r.Context(), d)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handlers) checkIn(w http.ResponseWriter, r *http.Request) {
	id, err := placeID(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	var c domain.CheckIn
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "invalid check-in payload")
		return
	}
	p, err := h.Gw.CheckIn(r.Context(), id, c)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handlers) editPlace(w http.ResponseWriter, r *http.Request) {
	id, err := placeID(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	var e domain.DetailsEdit
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "invalid edit payload")
		return
	}
	p, err := h.Gw.EditDetails(r.Context(), h.session(r), id, e)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handlers) deletePlace(w http.ResponseWriter, r *http.Request) {
	id, err := placeID(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	if err := h.Gw.Delete(r.Context(), h.session(r), id); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- import / export ----

func (h *Handlers) export(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="goodfood-places.json"`)
	if err := h.Gw.Export(w); err != nil {
		log.Error().Err(err).Msg("export failed")
	}
}

func (h *Handlers) importPlaces(w http.ResponseWriter, r *http.Request) {
	n, err := h.Gw.Import(r.Context(), r.Body)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"imported": n})
}

// ---- posts ----

func (h *Handlers) listPosts(w http.ResponseWriter, r *http.Request) {
	ps, err := h.Posts.List(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeCacheable(w, r, ps)
}

func (h *Handlers) addPost(w http.ResponseWriter, r *http.Request) {
	var d app.PostDraft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "invalid post payload")
		return
	}
	p, err := h.Posts.Add(r.Context(), d)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handlers) replyPost(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Reply string `json:"reply"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "invalid reply payload")
		return
	}
	if err := h.Posts.Reply(r.Context(), h.session(r), chi.URLParam(r, "id"), body.Reply); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) deletePost(w http.ResponseWriter, r *http.Request) {
	if err := h.Posts.Delete(r.Context(), h.session(r), chi.URLParam(r, "id")); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
