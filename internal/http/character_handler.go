package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"spiegelmatch/internal/domain"
	"spiegelmatch/internal/service"
)

// CharacterHandler expone la generacion y consulta de perfiles.
type CharacterHandler struct {
	logger     *zap.Logger
	characters *service.CharacterService
}

func NewCharacterHandler(logger *zap.Logger, characters *service.CharacterService) *CharacterHandler {
	return &CharacterHandler{logger: logger, characters: characters}
}

type tagRequest struct {
	TagID     string `json:"tagId" binding:"required,max=200"`
	TagType   string `json:"tagType" binding:"required,oneof=must nice"`
	Intensity int    `json:"intensity" binding:"required,min=1,max=5"`
	Category  string `json:"category" binding:"max=200"`
}

type generateRequest struct {
	UserID      string                      `json:"userId" binding:"required,uuid"`
	Username    string                      `json:"username" binding:"required,min=3,max=30,username"`
	Tags        []tagRequest                `json:"tags" binding:"required,min=1,max=100,dive"`
	Lifestyle   domain.LifestyleData        `json:"lifestyle"`
	Adjustments *domain.AdjustmentOverrides `json:"adjustments"`
}

// characterURI y userURI validan los path params antes de llegar a Postgres,
// donde un id que no es UUID falla el cast.
type characterURI struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type userURI struct {
	UserID string `uri:"userId" binding:"required,uuid"`
}

// Generate maneja POST /characters/generate.
func (h *CharacterHandler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err, "generate character")
		return
	}
	if !callerAllowed(c, req.UserID) {
		forbidden(c)
		return
	}

	tags := make([]domain.TagSelection, len(req.Tags))
	for i, t := range req.Tags {
		tags[i] = domain.TagSelection{TagID: t.TagID, TagType: t.TagType, Intensity: t.Intensity, Category: t.Category}
	}

	profile, err := h.characters.Generate(c.Request.Context(), service.GenerateInput{
		UserID:      req.UserID,
		Username:    req.Username,
		Tags:        tags,
		Lifestyle:   req.Lifestyle,
		Adjustments: req.Adjustments,
	})
	if err != nil {
		writeServiceError(c, h.logger, err, "generate character")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"character": profile})
}

// Get maneja GET /characters/:id. Con auth activa solo el dueño lo lee.
func (h *CharacterHandler) Get(c *gin.Context) {
	var uri characterURI
	if err := c.ShouldBindUri(&uri); err != nil {
		badRequest(c, h.logger, err, "get character")
		return
	}
	profile, err := h.characters.Get(c.Request.Context(), uri.ID)
	if err != nil {
		writeServiceError(c, h.logger, err, "get character")
		return
	}
	if !callerAllowed(c, profile.UserID) {
		forbidden(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"character": profile})
}

// ListByUser maneja GET /characters/user/:userId.
func (h *CharacterHandler) ListByUser(c *gin.Context) {
	var uri userURI
	if err := c.ShouldBindUri(&uri); err != nil {
		badRequest(c, h.logger, err, "list characters")
		return
	}
	if !callerAllowed(c, uri.UserID) {
		forbidden(c)
		return
	}
	profiles, err := h.characters.ListByUser(c.Request.Context(), uri.UserID)
	if err != nil {
		writeServiceError(c, h.logger, err, "list characters")
		return
	}
	c.JSON(http.StatusOK, gin.H{"characters": profiles, "count": len(profiles)})
}

// UpdateAdjustments maneja PATCH /characters/:id/adjustments. Solo el dueño puede ajustar.
func (h *CharacterHandler) UpdateAdjustments(c *gin.Context) {
	var uri characterURI
	if err := c.ShouldBindUri(&uri); err != nil {
		badRequest(c, h.logger, err, "update adjustments")
		return
	}
	var req domain.AdjustmentOverrides
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err, "update adjustments")
		return
	}

	ctx := c.Request.Context()
	current, err := h.characters.Get(ctx, uri.ID)
	if err != nil {
		writeServiceError(c, h.logger, err, "update adjustments")
		return
	}
	if !callerAllowed(c, current.UserID) {
		forbidden(c)
		return
	}

	profile, err := h.characters.UpdateAdjustments(ctx, current.ID, req)
	if err != nil {
		writeServiceError(c, h.logger, err, "update adjustments")
		return
	}
	c.JSON(http.StatusOK, gin.H{"character": profile})
}
