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

	"sharespace/internal/adapter/api"
	"sharespace/internal/adapter/api/handler"
	apimiddleware "sharespace/internal/adapter/api/middleware"
	"sharespace/internal/adapter/api/router"
	"sharespace/internal/adapter/repository"
	"sharespace/internal/infrastructure/firebase"
	"sharespace/internal/infrastructure/mailer"
	"sharespace/internal/infrastructure/storage"
	"sharespace/internal/infrastructure/websocket"
	"sharespace/internal/usecase"
	"sharespace/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption
	credentialsPath := ""

	// Service account from environment variable (for production), falling
	// back to a file path for local development.
	serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	if serviceAccountJSON != "" {
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		credentialsPath = os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if credentialsPath == "" {
			credentialsPath = "./service-account.json"
		}

		if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", credentialsPath)
		}

		opt = option.WithCredentialsFile(credentialsPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, credentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	productRepo := repository.NewFirestoreProductRepository(firestoreClient)
	conversationRepo := repository.NewFirestoreConversationRepository(firestoreClient)
	feedbackRepo := repository.NewFirestoreFeedbackRepository(firestoreClient)
	ratingRepo := repository.NewFirestoreRatingRepository(firestoreClient)

	firebaseAuthClient := firebase.NewAuthClient(authClient, cfg.FirebaseApiKey)
	emailClient := mailer.NewAuthEmailClient(cfg.AuthEmailFunctionURL)

	wsManager := websocket.NewManager()

	authUseCase := usecase.NewAuthUseCase(userRepo, firebaseAuthClient, emailClient)
	userUseCase := usecase.NewUserUseCase(userRepo, productRepo, conversationRepo, feedbackRepo, firebaseAuthClient)
	catalogUseCase := usecase.NewCatalogUseCase(productRepo, userRepo)
	chatUseCase := usecase.NewChatUseCase(conversationRepo, userRepo, storageClient, wsManager, cfg.MaxChatImageBytes)
	feedbackUseCase := usecase.NewFeedbackUseCase(feedbackRepo, userRepo)
	ratingUseCase := usecase.NewRatingUseCase(ratingRepo, userRepo)

	// A conversation's message listener runs only while someone has its room
	// open; the room lifecycle drives the subscription.
	wsManager.SetRoomHooks(
		func(conversationID string) { chatUseCase.Watch(ctx, conversationID) },
		chatUseCase.StopWatching,
	)
	wsManager.Start(ctx)

	if err := catalogUseCase.Start(ctx); err != nil {
		log.Fatalf("Failed to load product catalog: %v", err)
	}
	defer catalogUseCase.Stop()

	if err := feedbackUseCase.Refresh(ctx); err != nil {
		log.Printf("Initial feedback load failed: %v", err)
	}

	handler.Setup(authUseCase, userUseCase, catalogUseCase, feedbackUseCase, ratingUseCase)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)
	adminMiddleware := apimiddleware.NewAdminMiddleware(userRepo)

	chatHandler := handler.NewChatHandler(chatUseCase)
	wsHandler := handler.NewWebSocketHandler(wsManager, authMiddleware)
	fileHandler := handler.NewFileHandler(storageClient, cfg.MaxChatImageBytes)

	router.Setup(e, authMiddleware, adminMiddleware)
	router.SetupChatRouter(e, chatHandler, authMiddleware)
	router.SetupFileRouter(e, fileHandler, authMiddleware)
	router.SetupWebSocketRouter(e, wsHandler)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
