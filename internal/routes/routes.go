package routes

import (
	"net/http"

	"inkwell/internal/handlers"
	"inkwell/internal/middleware"

	"github.com/gorilla/mux"
)

func InitRoutes(
	router *mux.Router,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	accountHandler *handlers.AccountHandler,
	passwordHandler *handlers.PasswordHandler,
	postHandler *handlers.PostHandler,
) {
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Logging)

	api := router.PathPrefix("/api").Subrouter()

	// public
	api.HandleFunc("/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/refresh", authHandler.Refresh).Methods("POST")
	api.HandleFunc("/logout", authHandler.Logout).Methods("POST")

	api.HandleFunc("/password/forgot", passwordHandler.Forgot).Methods("POST")
	api.HandleFunc("/password/reset", passwordHandler.Reset).Methods("POST")

	api.HandleFunc("/posts", postHandler.ListAll).Methods("GET")
	api.HandleFunc("/posts/{id:[0-9]+}", postHandler.Get).Methods("GET")
	api.HandleFunc("/users/{username}/posts", postHandler.ListByAuthor).Methods("GET")

	// protected
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.JWTAuth(jwtSecret))

	protected.HandleFunc("/account", accountHandler.Get).Methods("GET")
	protected.HandleFunc("/account", accountHandler.Update).Methods("PATCH")

	protected.HandleFunc("/posts", postHandler.Create).Methods("POST")
	protected.HandleFunc("/posts/{id:[0-9]+}", postHandler.Update).Methods("PATCH")
	protected.HandleFunc("/posts/{id:[0-9]+}", postHandler.Delete).Methods("DELETE")

	// stored profile pictures
	router.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir("static"))),
	)
}
