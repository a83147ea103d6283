package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes mounts all handler endpoints under /v1
func setupRoutes(r chi.Router, handlers *routeHandlers) {
	r.Route("/v1", func(r chi.Router) {
		r.Use(HTTPLoggingMiddleware)

		r.Get("/health", handlers.healthHandler.health())

		// Team Handler endpoints
		r.Get("/teams", handlers.teamHandler.getAllTeams())
		r.Get("/teams/{teamID}", handlers.teamHandler.getTeam())
		r.Post("/teams", handlers.teamHandler.createTeam())
		r.Patch("/teams/{teamID}", handlers.teamHandler.updateTeam())
		r.Delete("/teams/{teamID}", handlers.teamHandler.deleteTeam())

		// User Handler endpoints
		r.Get("/users", handlers.userHandler.getAllUsers())
		r.Get("/users/count", handlers.userHandler.countUsers())
		r.Get("/users/{userID}", handlers.userHandler.getUser())
		r.Post("/users", handlers.userHandler.createUser())
		r.Patch("/users/{userID}", handlers.userHandler.updateUser())
		r.Delete("/users/{userID}", handlers.userHandler.deleteUser())

		// Tag Handler endpoints
		r.Get("/tags", handlers.tagHandler.getAllTags())
		r.Get("/tags/{tagID}", handlers.tagHandler.getTag())
		r.Post("/tags", handlers.tagHandler.createTag())
		r.Patch("/tags/{tagID}", handlers.tagHandler.updateTag())
		r.Delete("/tags/{tagID}", handlers.tagHandler.deleteTag())

		// Task Handler endpoints
		r.Get("/tasks", handlers.taskHandler.getAllTasks())
		r.Get("/tasks/{taskID}", handlers.taskHandler.getTask())
		r.Post("/tasks/sleep", handlers.taskHandler.triggerSleepTask())
		r.Post("/tasks/fail", handlers.taskHandler.triggerFailingTask())
	})
}
