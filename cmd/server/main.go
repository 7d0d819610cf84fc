// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/docagent/chatclient/internal/config"
	"github.com/docagent/chatclient/internal/handlers"
	"github.com/docagent/chatclient/internal/middleware"
	"github.com/docagent/chatclient/internal/services"
	"github.com/docagent/chatclient/internal/services/agent"
	"github.com/docagent/chatclient/internal/storage"
	"github.com/docagent/chatclient/internal/store"
)

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	cfg := config.Load()
	logger := services.NewLogger("chatclient")

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB Error: %v", err)
	}
	if err := db.AutoMigrate(&storage.Record{}); err != nil {
		log.Fatalf("DB Migration Error: %v", err)
	}

	// --- State + persistence ---
	conversationStore := store.New(store.NewReducer())
	persister := storage.NewPersister(storage.NewGormKV(db), logger)
	conversationStore.Subscribe(persister.OnTransition)

	// --- Gateway ---
	agentConfig := &agent.Config{
		AgentURL:  cfg.AgentWebhookURL,
		UploadURL: cfg.UploadWebhookURL,
	}
	provider, err := agent.NewWebhookProvider(agentConfig, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize agent gateway: %v", err)
	}

	// --- Service ---
	conversationService, err := services.NewConversationService(conversationStore, provider, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize conversation service: %v", err)
	}
	conversationService.Rehydrate(persister)

	// --- Handlers ---
	chatHandler := handlers.NewChatHandler(conversationService)

	// --- Router Setup ---
	r := mux.NewRouter()
	r.Use(corsMiddleware)
	r.Use(middleware.RecoverPanic(logger))
	r.Use(middleware.Logging(logger))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/state", chatHandler.GetState).Methods("GET")
	api.HandleFunc("/chats", chatHandler.CreateChat).Methods("POST")
	api.HandleFunc("/chats/{id}/select", chatHandler.SelectChat).Methods("POST")
	api.HandleFunc("/chats/{id}", chatHandler.DeleteChat).Methods("DELETE")
	api.HandleFunc("/messages", chatHandler.SendMessage).Methods("POST")
	api.HandleFunc("/username", chatHandler.SetUsername).Methods("PUT")
	api.HandleFunc("/upload", chatHandler.UploadFiles).Methods("POST")

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // agent calls have no deadline; see gateway
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
	logger.Info("server stopped")
}
