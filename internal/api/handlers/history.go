package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cetakin/printd/internal/history"
)

type HistoryHandler struct {
	store *history.Store
}

func NewHistoryHandler(store *history.Store) *HistoryHandler {
	return &HistoryHandler{store: store}
}

func (h *HistoryHandler) ListAttempts(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 || limit > 500 {
		limit = 50
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	attempts, err := h.store.ListAttempts(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to retrieve delivery history",
		})
		return
	}

	if attempts == nil {
		attempts = []*history.Attempt{}
	}
	c.JSON(http.StatusOK, attempts)
}

func (h *HistoryHandler) GetJobAttempts(c *gin.Context) {
	jobID := c.Param("id")
	attempts, err := h.store.ListAttemptsByJob(c.Request.Context(), jobID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to retrieve delivery history",
		})
		return
	}

	if len(attempts) == 0 {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: "No delivery attempts for this job",
		})
		return
	}
	c.JSON(http.StatusOK, attempts)
}
