package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"notedesk/auth"
	"notedesk/db"
	"notedesk/middleware"
)

var (
	testDB  *sql.DB
	authSvc *auth.Service
	h       *Handler
)

func TestMain(m *testing.M) {
	// Setup test environment
	godotenv.Load("../.env.test")

	conn, err := db.Connect(os.Getenv("DSN"))
	if err != nil {
		log.Fatal("test DB connection error: ", err)
	}
	testDB = conn
	authSvc = auth.NewService([]byte(os.Getenv("JWT_SECRET")), 7*24*time.Hour)
	h = New(testDB, authSvc)

	code := m.Run()

	testDB.Close()
	os.Exit(code)
}

func resetTables(t *testing.T) {
	t.Helper()
	for _, table := range []string{"notes", "tasks", "users"} {
		_, err := testDB.Exec("DELETE FROM " + table)
		require.NoError(t, err)
	}
}

// createTestUser inserts a user directly. MinCost keeps the fixtures fast;
// verification does not depend on the cost.
func createTestUser(t *testing.T, name, email, password string) int {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	result, err := testDB.Exec(
		"INSERT INTO users (name, email, password_hash) VALUES (?, ?, ?)",
		name, email, hash)
	require.NoError(t, err)
	id, err := result.LastInsertId()
	require.NoError(t, err)
	return int(id)
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func asUser(req *http.Request, userID int) *http.Request {
	return req.WithContext(middleware.WithUserID(req.Context(), userID))
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	chiCtx := chi.NewRouteContext()
	chiCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, chiCtx))
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}
