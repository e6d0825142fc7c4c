package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"notedesk/auth"
	"notedesk/config"
	"notedesk/db"
	"notedesk/handlers"
	appmw "notedesk/middleware"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config error: ", err)
	}

	conn, err := db.Connect(cfg.DSN)
	if err != nil {
		log.Fatal("DB connection error: ", err)
	}
	defer conn.Close()

	authSvc := auth.NewService([]byte(cfg.JWTSecret), cfg.TokenTTL)
	h := handlers.New(conn, authSvc)

	r := chi.NewRouter()

	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	r.Post("/api/auth/signup", h.Signup)
	r.Post("/api/auth/signin", h.Signin)
	r.Post("/api/auth/signout", h.Signout)

	r.Group(func(r chi.Router) {
		r.Use(appmw.RequireAuth(authSvc))
		r.Get("/api/me", h.Me)
		r.Get("/api/notes", h.ListNotes)
		r.Post("/api/notes", h.CreateNote)
		r.Put("/api/notes/{id}", h.UpdateNote)
		r.Delete("/api/notes/{id}", h.DeleteNote)
		r.Get("/api/tasks", h.ListTasks)
		r.Post("/api/tasks", h.CreateTask)
		r.Put("/api/tasks/{id}", h.UpdateTask)
		r.Delete("/api/tasks/{id}", h.DeleteTask)
	})

	r.Handle("/*", http.FileServer(http.Dir("web")))

	log.Println("Server running on", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Fatal(err)
	}
}
