package server

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/plute10/trivia/internal/config"
	"github.com/plute10/trivia/internal/question"
)

// NewHTTPServer wires the trivia API routes plus health and metrics endpoints.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, pool *pgxpool.Pool, rdb *redis.Client, handlers *question.HTTPHandlers) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := pingDependencies(r.Context(), pool, rdb); err != nil {
			logger.Error().Err(err).Msg("dependency ping failed")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"degraded"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /v1/categories", handlers.GetCategories)
	mux.HandleFunc("GET /v1/categories/{id}/questions", handlers.GetQuestionsByCategory)
	mux.HandleFunc("GET /v1/questions", handlers.GetQuestions)
	mux.HandleFunc("POST /v1/questions", handlers.PostQuestions)
	mux.HandleFunc("DELETE /v1/questions/{id}", handlers.DeleteQuestion)
	mux.HandleFunc("POST /v1/quizzes", handlers.PostQuiz)

	routePattern := func(r *http.Request) string {
		_, pattern := mux.Handler(r)
		return pattern
	}

	var handler http.Handler = mux
	handler = Logging(logger, routePattern)(handler)
	handler = RequestID()(handler)
	handler = CORS(cfg.CORS)(handler)

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler,
	}
}

func pingDependencies(ctx context.Context, pool *pgxpool.Pool, rdb *redis.Client) error {
	if err := pool.Ping(ctx); err != nil {
		return err
	}
	return rdb.Ping(ctx).Err()
}
