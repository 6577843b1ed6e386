package main

import (
	"context"
	"log"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"sparin/internal/adapter/api"
	"sparin/internal/adapter/api/handler"
	apimiddleware "sparin/internal/adapter/api/middleware"
	"sparin/internal/adapter/api/router"
	"sparin/internal/adapter/repository"
	fsdriver "sparin/internal/infrastructure/firestore"
	"sparin/internal/infrastructure/firebase"
	"sparin/internal/infrastructure/storage"
	"sparin/internal/infrastructure/websocket"
	"sparin/internal/session"
	"sparin/internal/store"
	"sparin/internal/store/memstore"
	"sparin/internal/usecase"
	"sparin/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption
	var credentialsPath string

	serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	if serviceAccountJSON != "" {
		log.Printf("Using Firebase service account from environment variable")
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if serviceAccountPath == "" {
			serviceAccountPath = "./service-account.json"
		}

		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}

		log.Printf("Using Firebase service account from file: %s", serviceAccountPath)
		opt = option.WithCredentialsFile(serviceAccountPath)
		credentialsPath = serviceAccountPath
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	var driver store.Driver
	switch cfg.StoreBackend {
	case "memory":
		// Volatile, for local development against dev tokens.
		log.Printf("Using in-memory document store")
		driver = memstore.New()
	default:
		firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
		if err != nil {
			log.Fatalf("Failed to create Firestore client: %v", err)
		}
		defer firestoreClient.Close()
		driver = fsdriver.NewDriver(firestoreClient)
	}

	userRepo := repository.NewStoreUserRepository(driver, session.ContextResolver{})
	communityRepo := repository.NewStoreCommunityRepository(driver)
	roomRepo := repository.NewStoreRoomRepository(driver)
	campaignRepo := repository.NewStoreCampaignRepository(driver)
	chatRepo := repository.NewStoreChatRepository(driver)
	matchRepo := repository.NewStoreMatchRepository(driver)
	feedRepo := repository.NewStoreFeedRepository(driver)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)

	var media handler.MediaUploader
	if cfg.StorageBucket != "" {
		mediaStorage, err := storage.NewMediaStorage(ctx, cfg.StorageBucket, credentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize media storage: %v", err)
		}
		defer mediaStorage.Close()
		media = mediaStorage
	} else {
		log.Printf("STORAGE_BUCKET not set, media uploads disabled")
	}

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	authUseCase := usecase.NewAuthUseCase(userRepo, firebaseAuthClient)

	handler.Setup(authUseCase, userRepo, communityRepo, roomRepo, campaignRepo, chatRepo, matchRepo, feedRepo, wsManager, media)
	handler.SetupHealthHandler(firebaseAuthClient)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	devMode := cfg.Environment == "development"
	authMiddleware := apimiddleware.NewAuthMiddleware(authClient, cfg.JWTSecret, devMode)
	limiter := apimiddleware.NewRateLimiter(10, time.Minute)

	wsHandler := handler.NewWebSocketHandler(wsManager, authMiddleware)

	router.Setup(e, authMiddleware, limiter)
	router.SetupWebSocketRouter(e, wsHandler)

	if devMode {
		handler.SetupDevTokenHandler(firebaseAuthClient, cfg.JWTSecret, cfg.JWTExpiry)
		router.SetupDevRouter(e)
	}

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
