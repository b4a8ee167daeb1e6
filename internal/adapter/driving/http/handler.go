package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ewallace/notekeep/internal/application"
)

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	auth   *application.AuthService
	notes  *application.NoteService
	logger *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(auth *application.AuthService, notes *application.NoteService, logger *slog.Logger) *Handler {
	return &Handler{
		auth:   auth,
		notes:  notes,
		logger: logger,
	}
}

// NewServeMux creates an http.Handler with all routes registered and wrapped
// with CORS, logging, and recovery middleware. Note routes and /me sit behind
// the bearer-token auth middleware.
func NewServeMux(h *Handler, allowedOrigins []string, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.Root)
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("POST /auth", h.Login)

	mux.Handle("GET /me", h.requireAuth(http.HandlerFunc(h.Me)))
	mux.Handle("GET /notes", h.requireAuth(http.HandlerFunc(h.ListNotes)))
	mux.Handle("POST /notes", h.requireAuth(http.HandlerFunc(h.CreateNote)))
	mux.Handle("GET /notes/{id}", h.requireAuth(http.HandlerFunc(h.GetNote)))
	mux.Handle("GET /notes/{id}/html", h.requireAuth(http.HandlerFunc(h.GetNoteHTML)))
	mux.Handle("PUT /notes/{id}", h.requireAuth(http.HandlerFunc(h.UpdateNote)))
	mux.Handle("DELETE /notes/{id}", h.requireAuth(http.HandlerFunc(h.DeleteNote)))

	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, mux)
	wrapped = corsMiddleware(allowedOrigins, wrapped)
	wrapped = loggingMiddleware(logger, wrapped)

	return wrapped
}

// Login authenticates an email/password pair and issues a bearer token.
// Failures carry no detail beyond "invalid email or password".
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.auth.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Error("login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if user == nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := h.auth.IssueToken(user.ID)
	if err != nil {
		h.logger.Error("token issuance failed", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Me returns the currently authenticated user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toUserResponse(currentUser(r)))
}

// ListNotes returns all notes owned by the authenticated user, newest first.
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	notes, err := h.notes.List(r.Context(), user.ID)
	if err != nil {
		h.logger.Error("failed to list notes", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]NoteResponse, 0, len(notes))
	for _, note := range notes {
		resp = append(resp, toNoteResponse(note))
	}

	writeJSON(w, http.StatusOK, resp)
}

// CreateNote creates a new note for the authenticated user. Content defaults
// to the empty string when omitted.
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	var req CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	note, err := h.notes.Create(r.Context(), user.ID, req.Title, req.Content)
	if err != nil {
		h.logger.Error("failed to create note", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, toNoteResponse(*note))
}

// GetNote returns a single note. A note that does not exist and a note owned
// by someone else produce the same 404.
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	noteID, ok := notePathID(w, r)
	if !ok {
		return
	}

	note, err := h.notes.Get(r.Context(), noteID, user.ID)
	if err != nil {
		h.logger.Error("failed to get note", "note_id", noteID, "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if note == nil {
		writeError(w, http.StatusNotFound, "note not found")
		return
	}

	writeJSON(w, http.StatusOK, toNoteResponse(*note))
}

// GetNoteHTML returns the note content rendered as sanitized HTML.
func (h *Handler) GetNoteHTML(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	noteID, ok := notePathID(w, r)
	if !ok {
		return
	}

	note, err := h.notes.Get(r.Context(), noteID, user.ID)
	if err != nil {
		h.logger.Error("failed to get note", "note_id", noteID, "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if note == nil {
		writeError(w, http.StatusNotFound, "note not found")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(RenderMarkdown(note.Content)))
}

// UpdateNote applies a partial update: fields absent from the request body
// keep their stored values.
func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	noteID, ok := notePathID(w, r)
	if !ok {
		return
	}

	var req UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	note, err := h.notes.Update(r.Context(), noteID, user.ID, req.Title, req.Content)
	if err != nil {
		h.logger.Error("failed to update note", "note_id", noteID, "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if note == nil {
		writeError(w, http.StatusNotFound, "note not found")
		return
	}

	writeJSON(w, http.StatusOK, toNoteResponse(*note))
}

// DeleteNote hard-deletes a note owned by the authenticated user.
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	noteID, ok := notePathID(w, r)
	if !ok {
		return
	}

	deleted, err := h.notes.Delete(r.Context(), noteID, user.ID)
	if err != nil {
		h.logger.Error("failed to delete note", "note_id", noteID, "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "note not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Root returns service metadata.
func (h *Handler) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, RootResponse{Message: "notekeep", Version: "1.0.0"})
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// notePathID parses the {id} path segment, writing a 400 response on failure.
func notePathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid note id")
		return 0, false
	}
	return id, true
}

// mapAuthErr distinguishes an unauthorized outcome from a storage failure.
func (h *Handler) mapAuthErr(w http.ResponseWriter, err error) {
	if errors.Is(err, application.ErrUnauthorized) {
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	h.logger.Error("identity resolution failed", "error", err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}
