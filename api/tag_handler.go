package api

import (
	"net/http"

	"github.com/rosterhq/team-registry-backend/errs"
	"github.com/rosterhq/team-registry-backend/models"
	"github.com/rosterhq/team-registry-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type tagHandler struct {
	responder Responder
	logger    zerolog.Logger
	tags      *services.TagService
}

func newTagHandler(tags *services.TagService) tagHandler {
	logger := log.With().Str("handlerName", "tagHandler").Logger()

	return tagHandler{
		responder: NewResponder(logger),
		logger:    logger,
		tags:      tags,
	}
}

func (h tagHandler) getAllTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offset, limit, err := parsePagination(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		tags, err := h.tags.GetMany(r.Context(), offset, limit)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		response := make([]models.TagReadComposite, 0, len(tags))
		for _, tag := range tags {
			response = append(response, models.NewTagReadComposite(tag))
		}
		h.responder.WriteJSON(w, response)
	}
}

func (h tagHandler) getTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tagID, err := parseEntityID(r, "tagID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		tag, err := h.tags.Get(r.Context(), tagID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, models.NewTagReadComposite(*tag))
	}
}

func (h tagHandler) createTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input models.TagCreate
		if err := decodeBody(r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if input.Name == "" {
			h.responder.WriteError(w, errs.NewBadRequest("name is required"))
			return
		}

		tag, err := h.tags.Create(r.Context(), input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSONWithStatus(w, http.StatusCreated, models.NewTagRead(*tag))
	}
}

func (h tagHandler) updateTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tagID, err := parseEntityID(r, "tagID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var update models.TagUpdate
		if err := decodeBody(r, &update); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		tag, err := h.tags.Update(r.Context(), tagID, update)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, models.NewTagReadComposite(*tag))
	}
}

func (h tagHandler) deleteTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tagID, err := parseEntityID(r, "tagID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.tags.Delete(r.Context(), tagID); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "tag deleted successfully",
		})
	}
}
