package api

import (
	"net/http"

	"github.com/rosterhq/team-registry-backend/errs"
	"github.com/rosterhq/team-registry-backend/models"
	"github.com/rosterhq/team-registry-backend/services"
	"github.com/rosterhq/team-registry-backend/worker"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type userHandler struct {
	responder Responder
	logger    zerolog.Logger
	users     *services.UserService
	runner    *worker.Runner
}

func newUserHandler(users *services.UserService, runner *worker.Runner) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		responder: NewResponder(logger),
		logger:    logger,
		users:     users,
		runner:    runner,
	}
}

func (h userHandler) getAllUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offset, limit, err := parsePagination(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		users, err := h.users.GetMany(r.Context(), offset, limit)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		response := make([]models.UserReadComposite, 0, len(users))
		for _, user := range users {
			response = append(response, models.NewUserReadComposite(user))
		}
		h.responder.WriteJSON(w, response)
	}
}

func (h userHandler) getUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := parseEntityID(r, "userID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.users.Get(r.Context(), userID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, models.NewUserReadComposite(*user))
	}
}

func (h userHandler) createUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input models.UserCreate
		if err := decodeBody(r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.users.Create(r.Context(), input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSONWithStatus(w, http.StatusCreated, models.NewUserRead(*user))
	}
}

// updateUser applies a partial update and, when it succeeds, queues a
// notification email describing what changed.
func (h userHandler) updateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := parseEntityID(r, "userID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var update models.UserUpdate
		if err := decodeBody(r, &update); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		before, err := h.users.Get(r.Context(), userID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.users.Update(r.Context(), userID, update)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if _, err := h.runner.EnqueueUserUpdateNotification(
			r.Context(), *user, update, models.NewUserReadComposite(*before),
		); err != nil {
			h.logger.Error().Err(err).Str("userID", userID).Msg("failed to queue update notification")
		}

		h.responder.WriteJSON(w, models.NewUserReadComposite(*user))
	}
}

func (h userHandler) deleteUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := parseEntityID(r, "userID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.users.Delete(r.Context(), userID); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "user deleted successfully",
		})
	}
}

// countUsers reports the total user count, or with ?affiliated=true only the
// users currently assigned to a team.
func (h userHandler) countUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		column := ""
		switch r.URL.Query().Get("affiliated") {
		case "", "false":
		case "true":
			column = "team_id"
		default:
			h.responder.WriteError(w, errs.NewBadRequest("affiliated must be true or false"))
			return
		}

		count, err := h.users.Count(r.Context(), column)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, map[string]int64{"count": count})
	}
}
