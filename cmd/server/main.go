package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"biletrack/internal/db"
	"biletrack/internal/handlers"
	mw "biletrack/internal/middleware"
	"biletrack/internal/seed"
	"biletrack/internal/store"
)

func getenv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}
	port := getenv("PORT", "8080")
	databaseURL := os.Getenv("DATABASE_URL")

	// The durable store needs DATABASE_URL; without it the server runs
	// against the in-memory store with the sample dataset, which is
	// enough for local frontend work.
	var st store.Storage
	if databaseURL != "" {
		dbConn, err := sqlx.Open("pgx", databaseURL)
		if err != nil {
			slog.Error("failed to open db", slog.Any("err", err))
			os.Exit(1)
		}
		dbConn.SetMaxOpenConns(10)
		dbConn.SetConnMaxLifetime(2 * time.Hour)
		if err = dbConn.Ping(); err != nil {
			slog.Error("failed to ping db", slog.Any("err", err))
			os.Exit(1)
		}
		if err := db.RunMigrations(dbConn); err != nil {
			slog.Error("failed migrations", slog.Any("err", err))
			os.Exit(1)
		}
		st = store.NewPostgresStore(dbConn)
	} else {
		slog.Warn("DATABASE_URL not set; using in-memory store")
		st = store.NewMemStore()
	}

	if os.Getenv("SEED_ON_START") == "true" || databaseURL == "" {
		if err := seed.Apply(context.Background(), st); err != nil {
			slog.Error("failed to seed", slog.Any("err", err))
			os.Exit(1)
		}
		slog.Info("sample data seeded")
	}

	zapLogger, err := zap.NewProduction()
	if err != nil {
		slog.Error("failed to init zap", slog.Any("err", err))
		os.Exit(1)
	}
	defer zapLogger.Sync()

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(mw.ZapRequestLogger(zapLogger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authHandler := handlers.NewAuthHandler(st, []byte(jwtSecret))
	foodHandler := handlers.NewFoodHandler(st)
	recipeHandler := handlers.NewRecipeHandler(st)
	mealPlanHandler := handlers.NewMealPlanHandler(st)
	groceryHandler := handlers.NewGroceryHandler(st)
	progressHandler := handlers.NewProgressHandler(st)
	userHandler := handlers.NewUserHandler(st)
	adminHandler := handlers.NewAdminHandler(st)
	authMW := mw.NewAuthMiddleware([]byte(jwtSecret))

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/register", authHandler.Register)
		api.Post("/auth/login", authHandler.Login)

		api.Get("/foods", foodHandler.List)
		api.Get("/foods/search", foodHandler.Search)
		api.Get("/foods/category/{category}", foodHandler.ByCategory)
		api.Get("/foods/{id}", foodHandler.ByID)
		api.Get("/foods/{id}/alternatives", foodHandler.Alternatives)

		api.Get("/recipes", recipeHandler.List)
		api.Get("/recipes/safe", recipeHandler.Safe)
		api.Get("/recipes/tag/{tag}", recipeHandler.ByTag)
		api.Get("/recipes/{id}", recipeHandler.ByID)
		api.Post("/recipes", recipeHandler.Create)

		api.Get("/meal-plans/{userId}/week/{weekStartDate}", mealPlanHandler.Week)
		api.Get("/meal-plans/{userId}/{date}", mealPlanHandler.ByDate)
		api.Post("/meal-plans", mealPlanHandler.Create)
		api.Post("/meal-plans/validate", mealPlanHandler.Validate)
		api.Patch("/meal-plans/{id}", mealPlanHandler.Update)

		api.Get("/grocery-lists/{userId}/active", groceryHandler.Active)
		api.Get("/grocery-lists/{id}", groceryHandler.ByID)
		api.Post("/grocery-lists", groceryHandler.Create)
		api.Patch("/grocery-lists/{id}", groceryHandler.Update)

		api.Get("/progress/{userId}/week/{weekStartDate}", progressHandler.Week)
		api.Get("/progress/{userId}/{date}", progressHandler.ByDate)
		api.Post("/progress", progressHandler.Create)
		api.Patch("/progress/{id}", progressHandler.Update)

		api.Get("/users/{id}", userHandler.Get)
		api.Get("/users/{id}/recovery", userHandler.Recovery)
		api.Patch("/users/{id}", userHandler.Update)

		api.Group(func(pr chi.Router) {
			pr.Use(authMW.RequireAuth)
			pr.Post("/admin/reseed", adminHandler.Reseed)
			pr.Get("/admin/overview", adminHandler.Overview)
		})
	})

	srv := &http.Server{Addr: ":" + port, Handler: r}
	go func() {
		slog.Info("server starting", slog.String("addr", ":"+port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.Any("err", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutdown initiated")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	slog.Info("server stopped")
}
