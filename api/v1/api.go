package v1

import (
	"net/http"

	"github.com/acuna/shelfwise/catalog"
	"github.com/acuna/shelfwise/middleware"
	"github.com/acuna/shelfwise/recommend"
	"github.com/acuna/shelfwise/store"
	"github.com/gorilla/mux"
)

type Handler struct {
	store      *store.Store
	reconciler *catalog.Reconciler
	workflow   *recommend.Workflow
	secret     string
}

func NewHandler(store *store.Store, reconciler *catalog.Reconciler, workflow *recommend.Workflow, jwtSecret string) *Handler {
	return &Handler{
		store:      store,
		reconciler: reconciler,
		workflow:   workflow,
		secret:     jwtSecret,
	}
}

// Server mounts the v1 API on the router.
func Server(router *mux.Router, handler *Handler) {
	sr := router.PathPrefix("/api/v1").Subrouter()
	m := middleware.NewMiddleware()
	sr.Use(m.HandleCORS)
	sr.Use(m.LoggingRequest)
	sr.Use(NewAuthInterceptor(handler.store, handler.secret).AuthenticationInterceptor)
	sr.Methods(http.MethodOptions)

	sr.HandleFunc("/signup", handler.signUp).Methods(http.MethodPost)
	sr.HandleFunc("/signin", handler.signIn).Methods(http.MethodPost)
	sr.HandleFunc("/auth/me", handler.currentUser).Methods(http.MethodGet)

	sr.HandleFunc("/books", handler.searchBooks).Methods(http.MethodGet)

	sr.HandleFunc("/shelf", handler.listShelf).Methods(http.MethodGet)
	sr.HandleFunc("/shelf", handler.addToShelf).Methods(http.MethodPost)
	sr.HandleFunc("/shelf/{bookID}", handler.updateShelfEntry).Methods(http.MethodPatch, http.MethodPut)
	sr.HandleFunc("/shelf/{bookID}", handler.removeFromShelf).Methods(http.MethodDelete)

	sr.HandleFunc("/recommendations", handler.generateRecommendations).Methods(http.MethodPost)
	sr.HandleFunc("/recommendations", handler.listRecommendationHistory).Methods(http.MethodGet)
	sr.HandleFunc("/recommendations/latest", handler.listLatestRecommendations).Methods(http.MethodGet)
}

// unauthenticatedPaths can be reached without an access token.
var unauthenticatedPaths = []string{
	"/api/v1/signup",
	"/api/v1/signin",
}

func isUnauthorizeAllowed(path string) bool {
	for _, p := range unauthenticatedPaths {
		if p == path {
			return true
		}
	}
	return false
}
