package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/contra19/book-search/config"
	"github.com/contra19/book-search/handlers"
	"github.com/contra19/book-search/middleware"
	"github.com/contra19/book-search/service"
	"github.com/contra19/book-search/store"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config: ", err)
	}

	ctx := context.Background()
	db, err := store.NewMongoDB(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Fatal("mongodb: ", err)
	}
	defer func() {
		if err := db.Disconnect(context.Background()); err != nil {
			log.Println("mongodb disconnect:", err)
		}
	}()
	if err := db.EnsureIndexes(ctx); err != nil {
		log.Fatal("mongodb indexes: ", err)
	}

	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)

	authHandler := &handlers.AuthHandler{
		Store:  db,
		Tokens: tokens,
		// Roughly one login attempt per two seconds per IP, bursting to 10.
		Limiter: service.NewTokenBucket(0.5, 10),
	}
	usersHandler := &handlers.UsersHandler{Store: db}
	searchHandler := &handlers.SearchHandler{Catalog: service.NewCatalogClient()}

	r := chi.NewRouter()
	r.Use(middleware.AllowAll())
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"welcome to book-search."}`))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(tokens))
		r.Post("/users", authHandler.Register)
		r.Post("/users/login", authHandler.Login)
		r.Get("/users/me", usersHandler.Me)
		r.Put("/users/me/books", usersHandler.SaveBook)
		r.Delete("/users/me/books/{bookId}", usersHandler.RemoveBook)
		r.Get("/books/search", searchHandler.Search)
	})

	server := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Println("server listening on :" + cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("shutdown:", err)
	}
}
