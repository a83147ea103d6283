package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rosterhq/team-registry-backend/errs"
	"github.com/rosterhq/team-registry-backend/models"
	"github.com/rosterhq/team-registry-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type teamHandler struct {
	responder Responder
	logger    zerolog.Logger
	teams     *services.TeamService
}

func newTeamHandler(teams *services.TeamService) teamHandler {
	logger := log.With().Str("handlerName", "teamHandler").Logger()

	return teamHandler{
		responder: NewResponder(logger),
		logger:    logger,
		teams:     teams,
	}
}

// getAllTeams returns a page of teams with users and tags nested
func (h teamHandler) getAllTeams() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offset, limit, err := parsePagination(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		teams, err := h.teams.GetMany(r.Context(), offset, limit)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		response := make([]models.TeamReadComposite, 0, len(teams))
		for _, team := range teams {
			response = append(response, models.NewTeamReadComposite(team))
		}
		h.responder.WriteJSON(w, response)
	}
}

func (h teamHandler) getTeam() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID, err := parseEntityID(r, "teamID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		team, err := h.teams.Get(r.Context(), teamID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, models.NewTeamReadComposite(*team))
	}
}

func (h teamHandler) createTeam() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input models.TeamCreate
		if err := decodeBody(r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if input.Name == "" {
			h.responder.WriteError(w, errs.NewBadRequest("name is required"))
			return
		}

		team, err := h.teams.Create(r.Context(), input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSONWithStatus(w, http.StatusCreated, models.NewTeamRead(*team))
	}
}

// updateTeam applies a partial update, including the replace-by-name-set
// semantics for users_names and tags_names
func (h teamHandler) updateTeam() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID, err := parseEntityID(r, "teamID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var update models.TeamUpdate
		if err := decodeBody(r, &update); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		team, err := h.teams.Update(r.Context(), teamID, update)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, models.NewTeamReadComposite(*team))
	}
}

func (h teamHandler) deleteTeam() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID, err := parseEntityID(r, "teamID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.teams.Delete(r.Context(), teamID); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "team deleted successfully",
		})
	}
}

// parseEntityID extracts and validates a uuid path parameter.
func parseEntityID(r *http.Request, param string) (string, error) {
	raw := chi.URLParam(r, param)
	if raw == "" {
		return "", errs.NewBadRequest("missing " + param)
	}
	if _, err := uuid.Parse(raw); err != nil {
		return "", errs.NewBadRequest("invalid " + param)
	}
	return raw, nil
}
