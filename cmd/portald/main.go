package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	api "github.com/adesua/portal/internal/api/http"
	auth "github.com/adesua/portal/internal/auth/middleware"
	"github.com/adesua/portal/internal/config"
	"github.com/adesua/portal/internal/db"
	"github.com/adesua/portal/internal/gradebook"
	"github.com/adesua/portal/internal/grading"
	"github.com/adesua/portal/internal/quiz"
	"github.com/adesua/portal/internal/ranking"
	"github.com/adesua/portal/internal/rbac"
	"github.com/adesua/portal/internal/scores"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	if err := ensureAdminUser(ctx, dbh, cfg.AdminUser, cfg.AdminPassHash); err != nil {
		log.Fatalf("seed admin user: %v", err)
	}

	scoreStore := scores.NewSQLStore(dbh, cfg.DBDriver)
	quizStore := quiz.NewSQLStore(dbh)

	var syncer gradebook.Syncer = gradebook.NopSyncer{}
	if cfg.GradebookSyncURL != "" {
		syncer = gradebook.NewHTTPSyncer(cfg.GradebookSyncURL, nil, gradebook.NewSQLLogStore(dbh))
	}

	engine := quiz.NewEngine(quizStore, syncer)
	rankingSvc := ranking.NewService(scoreStore)
	aggregateSvc := grading.NewService(scoreStore)

	authSvc := auth.NewAuthService(cfg.AuthSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc, dbh))

	// Protected API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.With(rbac.Require("quiz:submit")).
			Post("/assessments/submit", api.SubmitAssessmentHandler(engine))
		pr.With(rbac.RequireAny("attempt:view-own", "attempt:view-all")).
			Get("/assessments/attempts/{attemptID}", api.GetAttemptHandler(quizStore))

		pr.With(rbac.Require("ranking:view")).
			Get("/class-rankings", api.ClassRankingsHandler(rankingSvc))
		pr.With(rbac.RequireAny("aggregate:view-own", "aggregate:view")).
			Get("/aggregates", api.StudentAggregateHandler(aggregateSvc))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (mode=%s, db=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}

func ensureAdminUser(ctx context.Context, db *sql.DB, username, passHash string) error {
	var exists int
	err := db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE username=$1`, username).Scan(&exists)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, role) VALUES ($1,$2,$3,'admin')`,
		uuid.NewString(), username, passHash)
	return err
}
