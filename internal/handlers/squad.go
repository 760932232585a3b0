package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xwingdb/squad-api/internal/dto"
	apierrors "github.com/xwingdb/squad-api/internal/errors"
	"github.com/xwingdb/squad-api/internal/middleware"
	"github.com/xwingdb/squad-api/internal/models"
	"github.com/xwingdb/squad-api/internal/services"
)

// SquadHandler coordinates squad-related HTTP handlers.
type SquadHandler struct {
	squadService *services.SquadService
}

// NewSquadHandler creates a new SquadHandler.
func NewSquadHandler(squadService *services.SquadService) *SquadHandler {
	return &SquadHandler{
		squadService: squadService,
	}
}

// SquadRequest is the JSON body shared by create and update. AdditionalData
// stays nil when the key is absent, which is distinct from an empty object.
type SquadRequest struct {
	Name           string         `json:"name"`
	Serialized     string         `json:"serialized"`
	Faction        string         `json:"faction"`
	AdditionalData models.JSONMap `json:"additional_data"`
}

func (req SquadRequest) input() services.SquadInput {
	return services.SquadInput{
		Name:           req.Name,
		Serialized:     req.Serialized,
		Faction:        req.Faction,
		AdditionalData: req.AdditionalData,
	}
}

// ListAll returns every user's squads grouped by faction. Public.
func (h *SquadHandler) ListAll(c *gin.Context) {
	lists, err := h.squadService.ListAll()
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, lists)
}

// ListMine returns the caller's squads grouped by faction.
func (h *SquadHandler) ListMine(c *gin.Context) {
	user, ok := middleware.GetUser(c)
	if !ok {
		apierrors.Forbidden(c, "")
		return
	}

	lists, err := h.squadService.ListForOwner(user.ID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, lists)
}

// Create stores a new squad for the caller.
func (h *SquadHandler) Create(c *gin.Context) {
	user, ok := middleware.GetUser(c)
	if !ok {
		apierrors.Forbidden(c, "")
		return
	}

	var req SquadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	id, err := h.squadService.Create(user.ID, req.input())
	if err != nil {
		c.JSON(http.StatusOK, dto.MutationFailure(squadErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, dto.MutationSuccess(id))
}

// Update replaces the mutable fields of one of the caller's squads.
func (h *SquadHandler) Update(c *gin.Context) {
	user, ok := middleware.GetUser(c)
	if !ok {
		apierrors.Forbidden(c, "")
		return
	}

	var req SquadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	id := c.Param("id")
	if err := h.squadService.Update(id, user.ID, req.input()); err != nil {
		c.JSON(http.StatusOK, dto.MutationFailure(squadErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, dto.MutationSuccess(id))
}

// Delete permanently removes one of the caller's squads.
func (h *SquadHandler) Delete(c *gin.Context) {
	user, ok := middleware.GetUser(c)
	if !ok {
		apierrors.Forbidden(c, "")
		return
	}

	id := c.Param("id")
	if err := h.squadService.Delete(id, user.ID); err != nil {
		c.JSON(http.StatusOK, dto.DeleteFailure(squadErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, dto.DeleteSuccess())
}

// Ping confirms the caller holds a valid session.
func (h *SquadHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// squadErrorMessage maps service errors to the human-readable strings the
// envelope carries. Persistence failures get a generic retry-later message
// and never leak storage detail.
func squadErrorMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrDuplicateName):
		return "You already have a squad with that name"
	case errors.Is(err, services.ErrNotOwner):
		return "You don't own that squad"
	case errors.Is(err, services.ErrSquadNotFound):
		return "That squad does not exist"
	case errors.Is(err, services.ErrInvalidName):
		return "Squad name is required"
	case errors.Is(err, services.ErrInvalidPayload):
		return "Serialized squad is required"
	case errors.Is(err, services.ErrInvalidFaction):
		return "Unknown faction"
	default:
		return "Something bad happened saving that squad, try again later"
	}
}
