package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rosterhq/team-registry-backend/database"
	"github.com/rosterhq/team-registry-backend/errs"
	"github.com/rosterhq/team-registry-backend/services"
	"github.com/rosterhq/team-registry-backend/worker"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, runner *worker.Runner, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		teamHandler:   newTeamHandler(services.NewTeamService(database)),
		userHandler:   newUserHandler(services.NewUserService(database), runner),
		tagHandler:    newTagHandler(services.NewTagService(database)),
		taskHandler:   newTaskHandler(services.NewTaskService(database), runner),
		healthHandler: newHealthHandler(database, startupTime),
	}
}

// decodeBody parses a JSON request body into dst, rejecting unknown fields.
func decodeBody(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errs.NewBadRequest("request body is required")
		}
		return errs.NewBadRequest("invalid request body: " + err.Error())
	}
	return nil
}
