package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"

	"github.com/go-sql-driver/mysql"

	"notedesk/auth"
	"notedesk/res"
)

// mysqlDuplicateEntry is the server error code for a unique index violation.
const mysqlDuplicateEntry = 1062

type Handler struct {
	db   *sql.DB
	auth *auth.Service
}

func New(db *sql.DB, auth *auth.Service) *Handler {
	return &Handler{db: db, auth: auth}
}

// writeErr maps store errors onto the API error taxonomy. Anything
// unrecognized is logged and answered as a 500.
func writeErr(w http.ResponseWriter, err error) {
	var mysqlErr *mysql.MySQLError
	switch {
	case errors.Is(err, sql.ErrNoRows):
		res.Error(w, "not found", http.StatusNotFound)
	case errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry:
		res.Error(w, "email already registered", http.StatusConflict)
	default:
		log.Printf("handlers: %v", err)
		res.Error(w, "internal error", http.StatusInternalServerError)
	}
}
