package server

import (
	"context"
	"fmt"
	"net/http"

	v1 "github.com/acuna/shelfwise/api/v1"
	"github.com/acuna/shelfwise/config"
	"github.com/acuna/shelfwise/log"
	"github.com/acuna/shelfwise/store"
	"github.com/acuna/shelfwise/version"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// StartServer starts the HTTP server.
func StartServer(ctx context.Context, handler *v1.Handler, store *store.Store) *http.Server {
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", config.Opts.Host, config.Opts.Port),
		Handler: setupHandler(handler, store),
	}

	go func() {
		log.Info("Starting HTTP server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	return server
}

func setupHandler(handler *v1.Handler, store *store.Store) http.Handler {
	router := mux.NewRouter()

	// Setup the API routes
	v1.Server(router, handler)

	router.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(); err != nil {
			http.Error(w, "Database Connection Error", http.StatusInternalServerError)
			return
		}

		w.Write([]byte("OK"))
	}).Name("healthcheck")

	router.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(version.GetCurrentVersion()))
	}).Name("version")

	return router
}
