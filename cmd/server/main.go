package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"

	rediscache "github.com/pollhub/api/internal/adapters/cache/redis"
	"github.com/pollhub/api/internal/adapters/handler/http"
	"github.com/pollhub/api/internal/adapters/oauth/google"
	"github.com/pollhub/api/internal/adapters/repository/postgres"
	"github.com/pollhub/api/internal/core/ports"
	"github.com/pollhub/api/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Println("Warning: JWT_SECRET not set")
	}

	db, err := sql.Open("postgres", dbConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	var resultCache ports.ResultCache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client := goredis.NewClient(&goredis.Options{Addr: addr})
		resultCache = rediscache.NewResultCache(client)
	} else {
		log.Println("REDIS_ADDR not set, result caching disabled")
	}

	pollRepo := postgres.NewPollRepository(db)
	voteRepo := postgres.NewVoteRepository(db)
	resultRepo := postgres.NewPollResultRepository(db)
	userRepo := postgres.NewUserRepository(db)
	authRepo := postgres.NewAuthRepository(db)

	pollSvc := services.NewPollService(pollRepo)
	voteSvc := services.NewVoteService(pollRepo, voteRepo, resultCache)
	resultSvc := services.NewResultService(resultRepo, resultCache)
	userSvc := services.NewUserService(userRepo)
	authSvc := services.NewAuthService(userRepo, authRepo, google.NewVerifier(), jwtSecret, os.Getenv("GOOGLE_CLIENT_ID"))

	pollHandler := http.NewPollHandler(pollSvc)
	voteHandler := http.NewVoteHandler(voteSvc)
	resultHandler := http.NewResultHandler(resultSvc)
	userHandler := http.NewUserHandler(userSvc)
	authHandler := http.NewAuthHandler(authSvc, os.Getenv("AUTH_REDIRECT_URL"), os.Getenv("COOKIE_DOMAIN"), stdhttp.SameSiteLaxMode)

	allowedOrigins := []string{"*"}
	if origin := os.Getenv("ALLOWED_ORIGIN"); origin != "" {
		allowedOrigins = []string{origin}
	}

	handler := http.NewHandler(pollHandler, voteHandler, resultHandler, authHandler, userHandler, jwtSecret, allowedOrigins)

	addr := "0.0.0.0:" + envOr("PORT", "8080")
	server := &stdhttp.Server{Addr: addr, Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func dbConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("POSTGRES_USER"),
		os.Getenv("POSTGRES_PASSWORD"),
		os.Getenv("POSTGRES_HOST"),
		os.Getenv("POSTGRES_PORT"),
		os.Getenv("POSTGRES_DB"),
	)
}
