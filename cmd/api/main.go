// cmd/api/main.go
// Main entry point for the application
// This file bootstraps all components and starts the server

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	// Internal packages
	"github.com/vivafit/vivafit-backend/internal/achievements"
	"github.com/vivafit/vivafit-backend/internal/activity"
	"github.com/vivafit/vivafit-backend/internal/auth"
	"github.com/vivafit/vivafit-backend/internal/calculator"
	"github.com/vivafit/vivafit-backend/internal/common/database"
	"github.com/vivafit/vivafit-backend/internal/config"
	"github.com/vivafit/vivafit-backend/internal/notifications"
	"github.com/vivafit/vivafit-backend/internal/preferences"
	"github.com/vivafit/vivafit-backend/internal/recommendation"
)

var startTime = time.Now()

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	log.Println("========================================")
	log.Println("🚀 Starting VivaFit API")
	log.Println("========================================")

	// 1. Load environment variables
	log.Println("📁 Step 1: Loading .env file...")
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  Warning: No .env file found (%v), using environment variables", err)
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	// 2. Load configuration
	log.Println("\n📋 Step 2: Loading configuration...")
	cfg := config.Load()
	log.Printf("✅ Configuration loaded")

	// 3. Validate configuration
	log.Println("\n✔️  Step 3: Validating configuration...")
	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ Configuration validation failed:", err)
	}
	log.Println("✅ Configuration is valid")

	// 4. Connect to PostgreSQL
	log.Println("\n🗄️  Step 4: Connecting to PostgreSQL...")
	db, err := database.NewPostgresDBFromURL(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Failed to connect to PostgreSQL:", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("❌ Failed to ping PostgreSQL:", err)
	}
	log.Println("✅ Connected to PostgreSQL successfully")

	// 5. Connect to Redis (optional)
	log.Println("\n📮 Step 5: Connecting to Redis...")
	var redisClient *redis.Client

	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClientFromURL(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️  Redis unavailable: %v, continuing without Redis", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Println("✅ Connected to Redis successfully")
		}
	} else {
		log.Println("⚠️  Redis URL not configured, skipping Redis connection")
	}

	// 6. Run database migrations
	log.Println("\n🔨 Step 6: Running database migrations...")
	if err := runMigrations(db); err != nil {
		log.Printf("❌ Migration error: %v", err)
		log.Fatal("Failed to run migrations")
	}
	log.Println("✅ Database migrations completed")

	// 7. Auth middleware (tokens are issued by the BaaS, only verified here)
	log.Println("\n🔐 Step 7: Initializing auth middleware...")
	authMiddleware := auth.NewMiddleware(cfg.JWTSecret)
	log.Println("✅ Auth middleware initialized")

	// 8. Notifications module (toast hub + in-app rows)
	log.Println("\n🔔 Step 8: Initializing Notifications module...")
	notificationsRepo := notifications.NewPostgresRepository(db)
	notificationsHub := notifications.NewHub()
	go notificationsHub.Run()
	notificationsService := notifications.NewService(notificationsRepo, notificationsHub)
	notificationsHandler := notifications.NewHandler(notificationsService, notificationsHub)
	log.Println("✅ Notifications module initialized")

	// 9. Activity service gateway
	log.Println("\n🏃 Step 9: Initializing Activity service gateway...")
	var activityService activity.Service
	if cfg.ActivityServiceURL != "" {
		activityService = activity.NewHTTPService(cfg.ActivityServiceURL, cfg.ActivityServiceTimeout, redisClient)
		log.Println("   ✅ Using HTTP activity service")
	} else {
		activityService = activity.NewMockService()
		log.Println("   ⚠️  Using mock activity service (development mode)")
	}
	log.Println("✅ Activity service gateway initialized")

	// 10. Preferences module
	log.Println("\n⚙️  Step 10: Initializing Preferences module...")
	preferencesRepo := preferences.NewPostgresRepository(db)
	preferencesService := preferences.NewService(preferencesRepo)
	preferencesHandler := preferences.NewHandler(preferencesService)
	log.Println("✅ Preferences module initialized")

	// 11. Recommendation module
	log.Println("\n🎯 Step 11: Initializing Recommendation module...")
	recommendationRepo := recommendation.NewPostgresRepository(db)
	recommendationStore := recommendation.NewStore(
		preferencesService, recommendationRepo, redisClient,
		cfg.DefaultMaxItems, cfg.ContentStaleAfter)
	recommendationHandler := recommendation.NewHandler(recommendationStore)

	// Preference writes trigger a recommendation rebuild
	preferencesService.SetUpdateHook(recommendationStore.OnPreferencesUpdated)

	recommendationScheduler := recommendation.NewScheduler(recommendationStore, cfg.RefreshScanInterval)
	if cfg.EnableSmartRecommendations {
		recommendationScheduler.Start()
	} else {
		log.Println("   ⚠️  Smart recommendations disabled, background refresh off")
	}
	log.Println("✅ Recommendation module initialized")

	// 12. Achievements module
	log.Println("\n🏆 Step 12: Initializing Achievements module...")
	achievementsRepo := achievements.NewPostgresRepository(db)
	achievementsService := achievements.NewService(achievementsRepo, activityService, notificationsService)
	achievementsHandler := achievements.NewHandler(achievementsService)
	log.Println("✅ Achievements module initialized")

	// 13. Calculator module
	log.Println("\n🧮 Step 13: Initializing Calculator module...")
	var explainer calculator.Explainer
	if cfg.EnableExplanations && cfg.ExplanationServiceURL != "" {
		explainer = calculator.NewHTTPExplainer(cfg.ExplanationServiceURL, cfg.ExplanationTimeout)
		log.Println("   ✅ Using HTTP explanation service")
	} else {
		explainer = calculator.MockExplainer{}
		log.Println("   ⚠️  Using mock explainer (development mode)")
	}
	calculatorService := calculator.NewService(explainer)
	calculatorHandler := calculator.NewHandler(calculatorService)
	log.Println("✅ Calculator module initialized")

	// 14. Setup routes
	log.Println("\n🛣️  Step 14: Setting up routes...")
	router := mux.NewRouter()

	// Health check and metrics
	router.HandleFunc("/health", healthCheck).Methods("GET")
	router.HandleFunc("/api", apiInfo).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Preferences routes run on chi, mounted under the main router
	preferencesRouter := chi.NewRouter()
	preferences.RegisterRoutes(preferencesRouter, preferencesHandler, authMiddleware)
	router.PathPrefix("/api/v1/preferences").Handler(preferencesRouter)
	log.Println("   ✅ Preferences routes registered")

	recommendation.RegisterRoutes(router, recommendationHandler, authMiddleware)
	log.Println("   ✅ Recommendation routes registered")

	achievements.RegisterRoutes(router, achievementsHandler, authMiddleware)
	log.Println("   ✅ Achievements routes registered")

	calculator.RegisterRoutes(router, calculatorHandler, authMiddleware)
	log.Println("   ✅ Calculator routes registered")

	notifications.RegisterRoutes(router, notificationsHandler, authMiddleware)
	log.Println("   ✅ Notifications routes registered")

	// Add middleware
	router.Use(loggingMiddleware)
	router.Use(corsMiddleware)

	// 15. Create and start HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Println("\n========================================")
		log.Printf("🚀 Server starting on http://localhost%s", srv.Addr)
		log.Printf("🌍 Environment: %s", cfg.Environment)
		log.Println("========================================")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("\n⚠️  Shutdown signal received...")

	log.Println("   - Stopping recommendation scheduler...")
	recommendationScheduler.Stop()

	log.Println("   - Shutting down notification hub...")
	notificationsHub.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ Server forced to shutdown:", err)
	}

	log.Println("✅ Server exited gracefully")
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(startTime).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// apiInfo returns API information
func apiInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{
        "name": "VivaFit API",
        "version": "1.0.0",
        "status": "running",
        "endpoints": {
            "health": "GET /health",
            "preferences": {
                "get": "GET /api/v1/preferences",
                "update": "PUT /api/v1/preferences",
                "reset": "DELETE /api/v1/preferences",
                "restrictions": "GET /api/v1/preferences/restrictions",
                "alternatives": "GET /api/v1/preferences/restrictions/{id}/alternatives",
                "checkIngredient": "POST /api/v1/preferences/check-ingredient"
            },
            "recommendations": {
                "get": "GET /api/v1/recommendations",
                "refresh": "POST /api/v1/recommendations/refresh",
                "context": "GET/PUT /api/v1/recommendations/context",
                "interactions": "POST /api/v1/recommendations/interactions",
                "suggestions": "GET /api/v1/recommendations/suggestions"
            },
            "achievements": {
                "get": "GET /api/v1/achievements",
                "challenges": "GET /api/v1/achievements/challenges",
                "events": "POST /api/v1/achievements/events",
                "title": "POST /api/v1/achievements/title",
                "level": "GET /api/v1/achievements/level",
                "streakSync": "POST /api/v1/achievements/streak/sync"
            },
            "calculator": {
                "weightLoss": "POST /api/v1/calculator/weight-loss"
            },
            "notifications": {
                "list": "GET /api/v1/notifications",
                "read": "POST /api/v1/notifications/{id}/read",
                "websocket": "GET /ws"
            }
        }
    }`))
}

// loggingMiddleware logs all requests with duration and status
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		log.Printf("→ %s %s from %s", r.Method, r.RequestURI, r.RemoteAddr)

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		log.Printf("← %s %s [%d] %v", r.Method, r.RequestURI, wrapped.statusCode, duration)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// corsMiddleware handles CORS for the SPA
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// runMigrations executes database migrations
func runMigrations(db *sqlx.DB) error {
	log.Println("   - Creating/updating tables...")

	migrations := []string{
		// Versioned preference blobs
		`CREATE TABLE IF NOT EXISTS user_preferences (
            user_id BIGINT PRIMARY KEY,
            version INTEGER NOT NULL,
            data JSONB NOT NULL,
            updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )`,

		// Versioned gamification state blobs
		`CREATE TABLE IF NOT EXISTS achievement_states (
            user_id BIGINT PRIMARY KEY,
            version INTEGER NOT NULL,
            data JSONB NOT NULL,
            updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )`,

		// In-app notification rows backing the toast history
		`CREATE TABLE IF NOT EXISTS notifications (
            id UUID PRIMARY KEY,
            user_id BIGINT NOT NULL,
            type VARCHAR(50) NOT NULL,
            title VARCHAR(255) NOT NULL,
            message TEXT NOT NULL,
            is_read BOOLEAN DEFAULT FALSE,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_user_created
            ON notifications(user_id, created_at DESC)`,

		// Content catalogs scored by the recommendation engine
		`CREATE TABLE IF NOT EXISTS videos (
            id SERIAL PRIMARY KEY,
            title VARCHAR(255) NOT NULL,
            category VARCHAR(100) NOT NULL,
            tags TEXT[] NOT NULL DEFAULT '{}',
            duration VARCHAR(20) NOT NULL DEFAULT '',
            difficulty VARCHAR(50) NOT NULL DEFAULT '',
            instructor VARCHAR(255) NOT NULL DEFAULT '',
            thumbnail_url TEXT NOT NULL DEFAULT '',
            is_premium BOOLEAN DEFAULT FALSE
        )`,

		`CREATE TABLE IF NOT EXISTS products (
            id SERIAL PRIMARY KEY,
            name VARCHAR(255) NOT NULL,
            category VARCHAR(100) NOT NULL,
            tags TEXT[] NOT NULL DEFAULT '{}',
            price NUMERIC(10,2) NOT NULL DEFAULT 0,
            description TEXT NOT NULL DEFAULT '',
            image_url TEXT NOT NULL DEFAULT '',
            in_stock BOOLEAN DEFAULT TRUE
        )`,

		`CREATE TABLE IF NOT EXISTS apps (
            id SERIAL PRIMARY KEY,
            name VARCHAR(255) NOT NULL,
            category VARCHAR(100) NOT NULL,
            features TEXT[] NOT NULL DEFAULT '{}',
            description TEXT NOT NULL DEFAULT '',
            platform VARCHAR(50) NOT NULL DEFAULT ''
        )`,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return seedCatalogs(db)
}

// seedCatalogs inserts a small starter catalog so development environments
// have content to score. Idempotent: skips when the videos table has rows.
func seedCatalogs(db *sqlx.DB) error {
	var count int
	if err := db.Get(&count, `SELECT COUNT(*) FROM videos`); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Println("   - Seeding starter content catalogs...")

	seeds := []string{
		`INSERT INTO videos (title, category, tags, duration, difficulty, instructor) VALUES
            ('HIIT Queima Total', 'Cardio HIIT', '{"queima","hiit","intenso"}', '25 min', 'avançado', 'Carla Mendes'),
            ('Yoga para Começar o Dia', 'Yoga', '{"iniciante","energia","alongamento"}', '20 min', 'iniciante', 'Paulo Reis'),
            ('Treino Funcional Completo', 'Funcional', '{"moderado","funcional"}', '35 min', 'intermediário', 'Ana Souza'),
            ('Alongamento Noturno', 'Alongamento', '{"relaxamento","leve"}', '15 min', 'iniciante', 'Paulo Reis'),
            ('Musculação em Casa', 'Musculação', '{"força","hipertrofia","halteres"}', '40 min', 'intermediário', 'Diego Lima'),
            ('Receitas Low Carb da Semana', 'Nutrição', '{"nutrição","low carb","receitas"}', '12 min', 'iniciante', 'Ju Andrade')`,
		`INSERT INTO products (name, category, tags, price, description) VALUES
            ('Faixa Elástica de Resistência', 'Acessórios Fitness', '{"iniciante","força"}', 39.90, 'Kit com 3 intensidades para treino em casa'),
            ('Whey Protein 900g', 'Nutrição', '{"proteína","hipertrofia","nutrição"}', 129.90, 'Suplemento proteico sabor baunilha'),
            ('Tapete de Yoga Antiderrapante', 'Acessórios Fitness', '{"yoga","alongamento"}', 89.90, 'Tapete 6mm com alça de transporte'),
            ('Barra Low Carb (caixa)', 'Nutrição', '{"low carb","lanche","nutrição"}', 54.90, 'Caixa com 12 barras sem açúcar'),
            ('Corda de Pular Profissional', 'Acessórios Fitness', '{"cardio","queima","hiit"}', 45.00, 'Rolamento de alta velocidade')`,
		`INSERT INTO apps (name, category, features, description, platform) VALUES
            ('VivaFit Coach', 'Fitness', '{"ai","treinos","planos"}', 'Planos de treino com halteres e faixa elástica gerados por IA', 'ios/android'),
            ('NutriTrack', 'Nutrição', '{"ai","diário alimentar"}', 'Diário alimentar com alertas nutricionais', 'ios/android'),
            ('SleepWell', 'Bem-estar', '{"sono","meditação"}', 'Monitoramento de sono e meditações guiadas', 'ios/android')`,
	}

	for i, seed := range seeds {
		if _, err := db.Exec(seed); err != nil {
			return fmt.Errorf("seed %d failed: %w", i+1, err)
		}
	}
	return nil
}
