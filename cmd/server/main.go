package main

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/araquiz/backend/internal/auth"
	"github.com/araquiz/backend/internal/config"
	"github.com/araquiz/backend/internal/database"
	"github.com/araquiz/backend/internal/generator"
	"github.com/araquiz/backend/internal/middleware"
	"github.com/araquiz/backend/internal/quiz"
	"github.com/araquiz/backend/internal/scores"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg := config.Load()

	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Optional leaderboard cache
	var cache *scores.Cache
	if cfg.RedisAddr != "" {
		cache, err = scores.NewCache(cfg.RedisAddr)
		if err != nil {
			log.Printf("WARN: leaderboard cache disabled: %v", err)
			cache = nil
		} else {
			defer cache.Close()
			log.Println("Leaderboard cache enabled:", cfg.RedisAddr)
		}
	}

	// Question generator
	gen := generator.NewGenerator(generator.Config{
		Model:             cfg.AnthropicModel,
		ValidationModel:   cfg.ValidationModel,
		Language:          cfg.QuestionLanguage,
		Mock:              cfg.MockGenerator,
		UseCLI:            cfg.UseCLIGenerator,
		CLIPath:           cfg.CLIPath,
		ValidationEnabled: cfg.ValidationEnabled,
	})

	// Initialize handlers
	authHandler := auth.NewHandler(db)
	scoreStore := scores.NewStore(db, cache)
	scoreHandler := scores.NewHandler(scoreStore)
	quizManager := quiz.NewManager(gen)
	quizHandler := quiz.NewHandler(quizManager, scoreStore)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")

	protected.HandleFunc("/quiz/start", quizHandler.StartQuiz).Methods("POST")
	protected.HandleFunc("/quiz/state", quizHandler.GetState).Methods("GET")
	protected.HandleFunc("/quiz/select", quizHandler.SelectOption).Methods("POST")
	protected.HandleFunc("/quiz/submit", quizHandler.SubmitAnswer).Methods("POST")
	protected.HandleFunc("/quiz/next", quizHandler.NextQuestion).Methods("POST")
	protected.HandleFunc("/quiz/restart", quizHandler.RestartQuiz).Methods("POST")

	protected.HandleFunc("/leaderboard", scoreHandler.GetLeaderboard).Methods("GET")
	protected.HandleFunc("/scores/history", scoreHandler.GetRunHistory).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	log.Printf("Server starting on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
