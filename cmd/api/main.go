package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medcampconnect/medcamp-api/internal/config"
	"github.com/medcampconnect/medcamp-api/internal/handlers"
	"github.com/medcampconnect/medcamp-api/internal/middleware"
	"github.com/medcampconnect/medcamp-api/internal/routes"
	"github.com/medcampconnect/medcamp-api/internal/services"
	"github.com/medcampconnect/medcamp-api/internal/store"
	"github.com/medcampconnect/medcamp-api/internal/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	cfg.LogSummary()

	// --- Database Connection ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}
	db := client.Database(cfg.MongoDatabase)
	log.Println("Pinged your deployment. You successfully connected to MongoDB!")

	if err := store.EnsureIndexes(ctx, db); err != nil {
		log.Printf("Index setup incomplete: %v", err)
	}
	st := store.New(db, cfg.StoreTimeout)

	// --- Initialize Services ---
	tokens, err := utils.NewTokenService(cfg.TokenSecret)
	if err != nil {
		log.Fatalf("Token service: %v", err)
	}
	images, err := newImageHost(cfg)
	if err != nil {
		log.Fatalf("Image host: %v", err)
	}

	var (
		revoker     handlers.Revoker
		revocations middleware.Revocations
		redisConn   *services.RedisRevoker
	)
	if cfg.RedisAddr != "" {
		redisConn = services.NewRedisRevoker(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := redisConn.Ping(ctx); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		revoker, revocations = redisConn, redisConn
	}

	h := handlers.NewHandler(handlers.Deps{
		Camps:      st.Camps,
		Users:      st.Users,
		Bookings:   st.Bookings,
		Feedback:   st.Feedback,
		Slider:     st.Slider,
		Tokens:     tokens,
		Payments:   services.NewPaymentService(cfg.StripeSecretKey, cfg.Currency),
		Images:     images,
		Revoker:    revoker,
		Production: cfg.Production,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.NewRouter(h, cfg.CORSOrigins, revocations),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("MedCampConnect is running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Println("Server forced to shutdown:", err)
	}
	if redisConn != nil {
		if err := redisConn.Close(); err != nil {
			log.Println("Error closing Redis:", err)
		}
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		log.Println("Error disconnecting MongoDB:", err)
	}
	log.Println("Server exited")
}

func newImageHost(cfg *config.Config) (handlers.ImageHost, error) {
	if cfg.UploadProvider == "cloudinary" {
		return services.NewCloudinaryHost(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinarySecret, cfg.CloudinaryFolder)
	}
	return services.NewImgbbHost(cfg.ImgbbUploadURL, cfg.ImgbbAPIKey), nil
}
