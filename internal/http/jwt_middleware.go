package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"spiegelmatch/internal/service"
)

const (
	authClaimsKey = "auth_claims"
	authUserKey   = "auth_user_id"
	bearerScheme  = "bearer"
	authRealm     = "spiegelmatch"
)

// JWTAuthMiddleware exige un access token Bearer en rutas de personajes y
// matching. El user id del token queda en el contexto para el access log y
// para los chequeos de pertenencia.
func JWTAuthMiddleware(jwtSvc *service.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !jwtSvc.Enabled() {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "jwt not configured"})
			return
		}

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthorized(c, "", "missing token")
			return
		}

		claims, err := jwtSvc.ParseAccessToken(token)
		switch {
		case errors.Is(err, service.ErrJWTExpired):
			abortUnauthorized(c, "invalid_token", "token expired")
			return
		case err != nil:
			abortUnauthorized(c, "invalid_token", "invalid token")
			return
		}

		c.Set(authClaimsKey, claims)
		c.Set(authUserKey, claims.UserID)
		c.Next()
	}
}

// bearerToken extrae el token de "Bearer <token>", sin distinguir mayusculas
// en el esquema.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// abortUnauthorized responde 401 con el desafio WWW-Authenticate de RFC 6750.
// Sin token no se informa codigo de error.
func abortUnauthorized(c *gin.Context, code, msg string) {
	challenge := fmt.Sprintf("Bearer realm=%q", authRealm)
	if code != "" {
		challenge += fmt.Sprintf(", error=%q, error_description=%q", code, msg)
	}
	c.Header("WWW-Authenticate", challenge)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}

// GetAuthClaims obtiene claims de JWT desde el contexto.
func GetAuthClaims(c *gin.Context) (service.Claims, bool) {
	val, ok := c.Get(authClaimsKey)
	if !ok {
		return service.Claims{}, false
	}
	claims, ok := val.(service.Claims)
	return claims, ok
}

// callerAllowed es true si no hay auth configurada o el token pertenece a
// alguno de userIDs.
func callerAllowed(c *gin.Context, userIDs ...string) bool {
	claims, ok := GetAuthClaims(c)
	if !ok {
		return true
	}
	for _, id := range userIDs {
		if claims.UserID == id {
			return true
		}
	}
	return false
}
