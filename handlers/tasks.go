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

type createTaskRequest struct {
	Title string `json:"title"`
}

type updateTaskRequest struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		res.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	rows, err := h.db.QueryContext(r.Context(),
		"SELECT id, user_id, title, completed, created_at, updated_at FROM tasks WHERE user_id = ? ORDER BY updated_at DESC",
		userID)
	if err != nil {
		writeErr(w, err)
		return
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var task models.Task
		if err := rows.Scan(&task.ID, &task.UserID, &task.Title, &task.Completed, &task.CreatedAt, &task.UpdatedAt); err != nil {
			writeErr(w, err)
			return
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		writeErr(w, err)
		return
	}

	res.JSON(w, map[string]any{"tasks": tasks}, http.StatusOK)
}

func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		res.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		res.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		res.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	result, err := h.db.ExecContext(r.Context(),
		"INSERT INTO tasks (user_id, title) VALUES (?, ?)", userID, req.Title)
	if err != nil {
		writeErr(w, err)
		return
	}

	id, err := result.LastInsertId()
	if err != nil {
		writeErr(w, err)
		return
	}

	task, err := h.taskByID(r.Context(), int(id), userID)
	if err != nil {
		writeErr(w, err)
		return
	}
	res.JSON(w, map[string]any{"task": task}, http.StatusCreated)
}

func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		res.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	taskID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		res.Error(w, "not found", http.StatusNotFound)
		return
	}

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		res.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	req.Title = trimmedOrNil(req.Title)

	_, err = h.db.ExecContext(r.Context(),
		"UPDATE tasks SET title = COALESCE(?, title), completed = COALESCE(?, completed) WHERE id = ? AND user_id = ?",
		req.Title, req.Completed, taskID, userID)
	if err != nil {
		writeErr(w, err)
		return
	}

	task, err := h.taskByID(r.Context(), taskID, userID)
	if err != nil {
		writeErr(w, err)
		return
	}
	res.JSON(w, map[string]any{"task": task}, http.StatusOK)
}

func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		res.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	taskID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		res.Error(w, "not found", http.StatusNotFound)
		return
	}

	result, err := h.db.ExecContext(r.Context(),
		"DELETE FROM tasks WHERE id = ? AND user_id = ?", taskID, userID)
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

func (h *Handler) taskByID(ctx context.Context, id, userID int) (*models.Task, error) {
	var task models.Task
	err := h.db.QueryRowContext(ctx,
		"SELECT id, user_id, title, completed, created_at, updated_at FROM tasks WHERE id = ? AND user_id = ?",
		id, userID).
		Scan(&task.ID, &task.UserID, &task.Title, &task.Completed, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &task, nil
}
