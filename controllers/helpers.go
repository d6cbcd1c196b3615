package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/housekeeping-app/store"
	"github.com/yeremiapane/housekeeping-app/utils"
)

// respondStoreError maps the store failure taxonomy onto HTTP codes.
func respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrValidation):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, store.ErrNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, store.ErrConflict):
		utils.RespondError(c, http.StatusConflict, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}

// actorFrom resolves the acting user: the authenticated username when the
// request went through auth middleware, otherwise the fallback supplied in
// the request body (kiosk clients post finish/check without a session).
func actorFrom(c *gin.Context, fallback string) string {
	if v, exists := c.Get("username"); exists {
		if username, ok := v.(string); ok && username != "" {
			return username
		}
	}
	return fallback
}
