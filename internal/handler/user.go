package handler

import (
	"net/http"

	"buddyremind/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct{ stats *service.StatsService }

func NewUserHandler(stats *service.StatsService) *UserHandler { return &UserHandler{stats: stats} }

// GET /api/users/stats
func (h *UserHandler) Stats(c *gin.Context) {
	st, err := h.stats.GetOrCreate(c.Request.Context(), callerID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, st)
}
