package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"notedesk/middleware"
	"notedesk/models"
	"notedesk/res"
)

type createNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Nil fields are left untouched by an update.
type updateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		res.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	rows, err := h.db.QueryContext(r.Context(),
		"SELECT id, user_id, title, content, created_at, updated_at FROM notes WHERE user_id = ? ORDER BY updated_at DESC",
		userID)
	if err != nil {
		writeErr(w, err)
		return
	}
	defer rows.Close()

	notes := []models.Note{}
	for rows.Next() {
		var note models.Note
		if err := rows.Scan(&note.ID, &note.UserID, &note.Title, &note.Content, &note.CreatedAt, &note.UpdatedAt); err != nil {
			writeErr(w, err)
			return
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		writeErr(w, err)
		return
	}

	res.JSON(w, map[string]any{"notes": notes}, http.StatusOK)
}

func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		res.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var req createNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		res.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	if req.Title == "" || req.Content == "" {
		res.Error(w, "title and content are required", http.StatusBadRequest)
		return
	}

	result, err := h.db.ExecContext(r.Context(),
		"INSERT INTO notes (user_id, title, content) VALUES (?, ?, ?)",
		userID, req.Title, req.Content)
	if err != nil {
		writeErr(w, err)
		return
	}

	id, err := result.LastInsertId()
	if err != nil {
		writeErr(w, err)
		return
	}

	note, err := h.noteByID(r.Context(), int(id), userID)
	if err != nil {
		writeErr(w, err)
		return
	}
	res.JSON(w, map[string]any{"note": note}, http.StatusCreated)
}

func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		res.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	noteID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		res.Error(w, "not found", http.StatusNotFound)
		return
	}

	var req updateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		res.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	req.Title = trimmedOrNil(req.Title)
	req.Content = trimmedOrNil(req.Content)

	// COALESCE keeps the stored value for omitted fields; updated_at is
	// bumped by the database only when something actually changed. Filtering
	// by owner makes a foreign row indistinguishable from a missing one.
	_, err = h.db.ExecContext(r.Context(),
		"UPDATE notes SET title = COALESCE(?, title), content = COALESCE(?, content) WHERE id = ? AND user_id = ?",
		req.Title, req.Content, noteID, userID)
	if err != nil {
		writeErr(w, err)
		return
	}

	note, err := h.noteByID(r.Context(), noteID, userID)
	if err != nil {
		writeErr(w, err)
		return
	}
	res.JSON(w, map[string]any{"note": note}, http.StatusOK)
}

func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		res.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	noteID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		res.Error(w, "not found", http.StatusNotFound)
		return
	}

	result, err := h.db.ExecContext(r.Context(),
		"DELETE FROM notes WHERE id = ? AND user_id = ?", noteID, userID)
	if err != nil {
		writeErr(w, err)
		return
	}
	affected, err := result.RowsAffected()
	if err != nil {
		writeErr(w, err)
		return
	}
	if affected == 0 {
		res.Error(w, "not found", http.StatusNotFound)
		return
	}

	res.JSON(w, map[string]any{"ok": true}, http.StatusOK)
}

func (h *Handler) noteByID(ctx context.Context, id, userID int) (*models.Note, error) {
	var note models.Note
	err := h.db.QueryRowContext(ctx,
		"SELECT id, user_id, title, content, created_at, updated_at FROM notes WHERE id = ? AND user_id = ?",
		id, userID).
		Scan(&note.ID, &note.UserID, &note.Title, &note.Content, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// trimmedOrNil collapses an empty-after-trim value to nil so it behaves like
// an omitted field. Clearing a field to empty is not expressible, matching
// the create-side rule that forbids empty values.
func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
