package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/codes"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/middleware"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/router"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/store"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	utils.InitLogger()

	db := openStore()
	defer db.Close()

	codeStore := openCodeStore()

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(utils.GinLogger())
	engine.Use(middleware.MetricsMiddleware())

	// CORS configuration
	corsAllowedOriginsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	var allowedOrigins []string
	if corsAllowedOriginsEnv != "" {
		allowedOrigins = strings.Split(corsAllowedOriginsEnv, ",")
	} else {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowCredentials = true
	engine.Use(cors.New(config))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.Setup(engine, db, codeStore)

	port := utils.Getenv("PORT", "8080")
	utils.LogInfo("Server starting", map[string]interface{}{"port": port})

	if err := engine.Run(":" + port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}

// openStore selects the document store backend from STORE_BACKEND:
// "badger" (default), "postgres", or "memory".
func openStore() store.Store {
	backend := utils.Getenv("STORE_BACKEND", "badger")
	switch backend {
	case "badger":
		dir := utils.Getenv("BADGER_DIR", "./data/badger")
		db, err := store.OpenBadger(dir)
		if err != nil {
			log.Fatalf("Failed to open badger store: %v", err)
		}
		utils.LogInfo("Store initialized", map[string]interface{}{"backend": "badger", "dir": dir})
		return db
	case "postgres":
		db, err := store.OpenPostgres(
			utils.Getenv("DB_HOST", "localhost"),
			utils.Getenv("DB_PORT", "5432"),
			utils.Getenv("DB_USER", "gym_user"),
			utils.Getenv("DB_PASSWORD", "gym_password"),
			utils.Getenv("DB_NAME", "gym_db"),
			utils.Getenv("DB_SSLMODE", "disable"),
		)
		if err != nil {
			log.Fatalf("Failed to open postgres store: %v", err)
		}
		utils.LogInfo("Store initialized", map[string]interface{}{"backend": "postgres"})
		return db
	case "memory":
		utils.LogInfo("Store initialized", map[string]interface{}{"backend": "memory"})
		return store.NewMemory()
	default:
		log.Fatalf("Unknown STORE_BACKEND %q (want badger, postgres, or memory)", backend)
		return nil
	}
}

// openCodeStore uses redis for one-time codes when REDIS_ADDR is set, and
// falls back to the in-process store otherwise.
func openCodeStore() codes.Store {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		utils.LogInfo("Code store initialized", map[string]interface{}{"backend": "memory"})
		return codes.NewMemory()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
	utils.LogInfo("Code store initialized", map[string]interface{}{"backend": "redis", "addr": addr})
	return codes.NewRedis(client)
}
