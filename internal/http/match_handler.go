package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"spiegelmatch/internal/domain"
	"spiegelmatch/internal/service"
)

// MatchHandler expone el calculo y la consulta de matches.
type MatchHandler struct {
	logger  *zap.Logger
	matches *service.MatchService
}

func NewMatchHandler(logger *zap.Logger, matches *service.MatchService) *MatchHandler {
	return &MatchHandler{logger: logger, matches: matches}
}

// Calculate maneja POST /matching/calculate.
func (h *MatchHandler) Calculate(c *gin.Context) {
	var req struct {
		UserID1 string `json:"userId1" binding:"required,uuid"`
		UserID2 string `json:"userId2" binding:"required,uuid,nefield=UserID1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err, "calculate match")
		return
	}
	if !callerAllowed(c, req.UserID1, req.UserID2) {
		forbidden(c)
		return
	}

	result, err := h.matches.CalculateForUsers(c.Request.Context(), req.UserID1, req.UserID2)
	if err != nil {
		writeServiceError(c, h.logger, err, "calculate match")
		return
	}
	c.JSON(http.StatusOK, gin.H{"match": result})
}

// scoreProfile exige big5 explicito: un perfil sin rasgos no debe decodificarse
// como Big5 en cero y puntuarse igual.
type scoreProfile struct {
	domain.CharacterProfile
	Big5 *domain.Big5Scores `json:"big5" binding:"required"`
}

func (p *scoreProfile) profile() *domain.CharacterProfile {
	out := p.CharacterProfile
	out.Big5 = *p.Big5
	return &out
}

// Score maneja POST /matching/score: puntua dos perfiles completos sin persistir.
func (h *MatchHandler) Score(c *gin.Context) {
	var req struct {
		Character1 *scoreProfile `json:"character1" binding:"required"`
		Character2 *scoreProfile `json:"character2" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err, "score match")
		return
	}

	result, err := h.matches.ScoreProfiles(req.Character1.profile(), req.Character2.profile())
	if err != nil {
		writeServiceError(c, h.logger, err, "score match")
		return
	}
	c.JSON(http.StatusOK, gin.H{"match": result})
}

// ListByUser maneja GET /matching/user/:userId?limit=N.
func (h *MatchHandler) ListByUser(c *gin.Context) {
	var uri userURI
	if err := c.ShouldBindUri(&uri); err != nil {
		badRequest(c, h.logger, err, "list matches")
		return
	}
	userID := uri.UserID
	if !callerAllowed(c, userID) {
		forbidden(c)
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	matches, err := h.matches.ListForUser(c.Request.Context(), userID, limit)
	if err != nil {
		writeServiceError(c, h.logger, err, "list matches")
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches, "count": len(matches)})
}
