package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"campusfind/internal/adapter/api"
	"campusfind/internal/adapter/api/handler"
	apimiddleware "campusfind/internal/adapter/api/middleware"
	"campusfind/internal/adapter/api/router"
	"campusfind/internal/adapter/repository"
	"campusfind/internal/infrastructure/assistant"
	"campusfind/internal/infrastructure/firebase"
	"campusfind/internal/infrastructure/ratelimit"
	"campusfind/internal/infrastructure/websocket"
	"campusfind/internal/usecase"
	"campusfind/pkg/config"
	"campusfind/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opts []option.ClientOption

	serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	if serviceAccountJSON != "" {
		logger.Info("Using Firebase service account from environment variable")
		opts = append(opts, option.WithCredentialsJSON([]byte(serviceAccountJSON)))
	} else if serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"); serviceAccountPath != "" {
		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}
		logger.Info("Using Firebase service account from file: %s", serviceAccountPath)
		opts = append(opts, option.WithCredentialsFile(serviceAccountPath))
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	reportRepo := repository.NewFirestoreReportRepository(firestoreClient)
	claimRepo := repository.NewFirestoreClaimRepository(firestoreClient)
	returnRepo := repository.NewFirestoreReturnRepository(firestoreClient)
	chatRepo := repository.NewFirestoreChatRepository(firestoreClient)
	notificationRepo := repository.NewFirestoreNotificationRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)
	ollamaClient := assistant.NewOllamaClient(cfg.OllamaURL, cfg.OllamaModel)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)
	events := websocket.NewPublisher(wsManager)

	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	authUseCase := usecase.NewAuthUseCase(userRepo, firebaseAuthClient)
	notificationUseCase := usecase.NewNotificationUseCase(notificationRepo, userRepo, events)
	reportUseCase := usecase.NewReportUseCase(reportRepo, userRepo, events, rateLimiter)
	claimUseCase := usecase.NewClaimUseCase(reportRepo, claimRepo, returnRepo, chatRepo, userRepo, notificationUseCase, events, rateLimiter)
	chatUseCase := usecase.NewChatUseCase(chatRepo, reportRepo, userRepo, events, rateLimiter)
	adminUseCase := usecase.NewAdminUseCase(reportRepo, claimRepo, returnRepo, chatRepo, userRepo, notificationUseCase, events)
	assistantUseCase := usecase.NewAssistantUseCase(ollamaClient, rateLimiter)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)
	adminMiddleware := apimiddleware.NewAdminMiddleware(userRepo)

	handlers := router.Handlers{
		Auth:         handler.NewAuthHandler(authUseCase),
		Report:       handler.NewReportHandler(reportUseCase),
		Claim:        handler.NewClaimHandler(claimUseCase),
		Chat:         handler.NewChatHandler(chatUseCase),
		Admin:        handler.NewAdminHandler(adminUseCase, chatUseCase),
		Notification: handler.NewNotificationHandler(notificationUseCase),
		Assistant:    handler.NewAssistantHandler(assistantUseCase),
		WebSocket:    handler.NewWebSocketHandler(wsManager, authMiddleware),
		Health:       handler.NewHealthHandler(),
	}

	router.Setup(e, handlers, authMiddleware, adminMiddleware)

	logger.Info("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
