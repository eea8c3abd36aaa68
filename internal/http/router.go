package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"spiegelmatch/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas. Las rutas de
// personajes y matching exigen JWT solo si jwtSvc tiene secreto.
func NewRouter(
	logger *zap.Logger,
	jwtSvc *service.JWTService,
	characterH *CharacterHandler,
	matchH *MatchHandler,
	taxonomyH *TaxonomyHandler,
	healthH *HealthHandler,
) *gin.Engine {
	if err := registerValidators(); err != nil {
		logger.Error("register validators", zap.Error(err))
	}

	r := gin.New()

	// Middlewares basicos: request id, logging, recovery y JSON content-type.
	r.Use(requestIDMiddleware(), zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	health := r.Group("/health")
	health.GET("", healthH.Health)
	health.GET("/live", healthH.Live)
	health.GET("/ready", healthH.Ready)

	tax := r.Group("/taxonomy")
	tax.GET("", taxonomyH.Get)
	tax.GET("/search", taxonomyH.Search)
	tax.GET("/tags/:id", taxonomyH.Tag)
	tax.GET("/categories/:id", taxonomyH.Category)

	protected := r.Group("")
	if jwtSvc.Enabled() {
		protected.Use(JWTAuthMiddleware(jwtSvc))
	} else {
		logger.Warn("jwt secret not configured, character and matching routes are public")
	}

	characters := protected.Group("/characters")
	characters.POST("/generate", characterH.Generate)
	characters.GET("/user/:userId", characterH.ListByUser)
	characters.GET("/:id", characterH.Get)
	characters.PATCH("/:id/adjustments", characterH.UpdateAdjustments)

	matching := protected.Group("/matching")
	matching.POST("/calculate", matchH.Calculate)
	matching.POST("/score", matchH.Score)
	matching.GET("/user/:userId", matchH.ListByUser)

	return r
}
