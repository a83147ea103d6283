package api

import (
	"net/http"
	"time"

	"github.com/rosterhq/team-registry-backend/errs"
	"github.com/rosterhq/team-registry-backend/models"
	"github.com/rosterhq/team-registry-backend/services"
	"github.com/rosterhq/team-registry-backend/worker"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type taskHandler struct {
	responder Responder
	logger    zerolog.Logger
	tasks     *services.TaskService
	runner    *worker.Runner
}

func newTaskHandler(tasks *services.TaskService, runner *worker.Runner) taskHandler {
	logger := log.With().Str("handlerName", "taskHandler").Logger()

	return taskHandler{
		responder: NewResponder(logger),
		logger:    logger,
		tasks:     tasks,
		runner:    runner,
	}
}

func (h taskHandler) getAllTasks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offset, limit, err := parsePagination(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		tasks, err := h.tasks.GetMany(r.Context(), offset, limit)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		response := make([]models.TaskRead, 0, len(tasks))
		for _, task := range tasks {
			response = append(response, models.NewTaskRead(task))
		}
		h.responder.WriteJSON(w, response)
	}
}

func (h taskHandler) getTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		taskID, err := parseEntityID(r, "taskID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		task, err := h.tasks.Get(r.Context(), taskID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, models.NewTaskRead(*task))
	}
}

// triggerSleepTask queues a demo job that sleeps for ?seconds (default 5).
func (h taskHandler) triggerSleepTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seconds := 5
		if raw := r.URL.Query().Get("seconds"); raw != "" {
			parsed, err := time.ParseDuration(raw + "s")
			if err != nil || parsed < time.Second || parsed > 5*time.Minute {
				h.responder.WriteError(w, errs.NewBadRequest("seconds must be between 1 and 300"))
				return
			}
			seconds = int(parsed / time.Second)
		}

		task, err := h.runner.EnqueueSleepDemo(r.Context(), time.Duration(seconds)*time.Second)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSONWithStatus(w, http.StatusAccepted, models.NewTaskRead(*task))
	}
}

// triggerFailingTask queues the demo job that always errors, so the retry and
// failure paths can be observed end to end.
func (h taskHandler) triggerFailingTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		task, err := h.runner.EnqueueFailingDemo(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSONWithStatus(w, http.StatusAccepted, models.NewTaskRead(*task))
	}
}
