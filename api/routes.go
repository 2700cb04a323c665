package main

import (
	"net/http"
)

func composeRoutes(app *application) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /v1/healthcheck", app.healthCheckHandler)

	mux.HandleFunc("POST /v1/register", app.registerUserHandler)
	mux.HandleFunc("POST /v1/login", app.loginUserHandler)
	mux.HandleFunc("POST /v1/logout", app.logoutUserHandler)
	mux.HandleFunc("GET /v1/me", app.requireAuth(app.getCurrentUserHandler))

	mux.HandleFunc("POST /v1/forgot-password", app.forgotPasswordHandler)
	mux.HandleFunc("POST /v1/reset-password", app.resetPasswordHandler)

	mux.HandleFunc("GET /v1/todos", app.requireAuth(app.getTodosHandler))
	mux.HandleFunc("POST /v1/todos", app.requireAuth(app.createTodoHandler))
	mux.HandleFunc("GET /v1/todos/{id}", app.requireAuth(app.getTodoHandler))
	mux.HandleFunc("PATCH /v1/todos/{id}", app.requireAuth(app.updateTodoHandler))
	mux.HandleFunc("DELETE /v1/todos/{id}", app.requireAuth(app.deleteTodoHandler))

	return app.enableCORS(mux)
}
