package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"notedesk/auth"
	"notedesk/middleware"
	"notedesk/models"
	"notedesk/res"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		res.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		res.Error(w, "name, email and password are required", http.StatusBadRequest)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeErr(w, err)
		return
	}

	result, err := h.db.ExecContext(r.Context(),
		"INSERT INTO users (name, email, password_hash) VALUES (?, ?, ?)",
		req.Name, req.Email, hash)
	if err != nil {
		writeErr(w, err)
		return
	}

	id, err := result.LastInsertId()
	if err != nil {
		writeErr(w, err)
		return
	}

	user, err := h.userByID(r.Context(), int(id))
	if err != nil {
		writeErr(w, err)
		return
	}

	if err := h.setTokenCookie(w, user.ID); err != nil {
		writeErr(w, err)
		return
	}
	res.JSON(w, map[string]any{"user": user}, http.StatusCreated)
}

func (h *Handler) Signin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		res.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		res.Error(w, "email and password are required", http.StatusBadRequest)
		return
	}

	var user models.User
	err := h.db.QueryRowContext(r.Context(),
		"SELECT id, name, email, password_hash, created_at FROM users WHERE email = ?",
		req.Email).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// Same message as a bad password, so emails cannot be probed.
		res.Error(w, "invalid email or password", http.StatusUnauthorized)
		return
	case err != nil:
		writeErr(w, err)
		return
	}

	if !auth.VerifyPassword(req.Password, user.PasswordHash) {
		res.Error(w, "invalid email or password", http.StatusUnauthorized)
		return
	}

	if err := h.setTokenCookie(w, user.ID); err != nil {
		writeErr(w, err)
		return
	}
	res.JSON(w, map[string]any{"user": user}, http.StatusOK)
}

func (h *Handler) Signout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	res.JSON(w, map[string]any{"ok": true}, http.StatusOK)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		res.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	// The token may outlive the account row.
	user, err := h.userByID(r.Context(), userID)
	if err != nil {
		writeErr(w, err)
		return
	}
	res.JSON(w, map[string]any{"user": user}, http.StatusOK)
}

func (h *Handler) userByID(ctx context.Context, id int) (*models.User, error) {
	var user models.User
	err := h.db.QueryRowContext(ctx,
		"SELECT id, name, email, created_at FROM users WHERE id = ?", id).
		Scan(&user.ID, &user.Name, &user.Email, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (h *Handler) setTokenCookie(w http.ResponseWriter, userID int) error {
	token, err := h.auth.IssueToken(userID)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.auth.TTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
