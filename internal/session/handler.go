package session

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"HeadsUpPoker/internal/game/manager"
)

type joinRequest struct {
	TableID int64 `json:"table_id" binding:"required"`
	Seat    *int  `json:"seat" binding:"required"`
}

type joinResponse struct {
	Token   string `json:"token"`
	TableID int64  `json:"table_id"`
	Seat    int    `json:"seat"`
}

// JoinHandler handles POST /tables/join.
func (s *Service) JoinHandler(c *gin.Context) {
	var req joinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	token, b, err := s.Join(c.Request.Context(), req.TableID, *req.Seat)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, manager.ErrUnknownTable) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error(), "code": manager.ErrorCode(err)})
		return
	}

	c.JSON(http.StatusOK, joinResponse{
		Token:   token,
		TableID: b.TableID,
		Seat:    b.Seat,
	})
}
