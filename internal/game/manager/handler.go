package manager

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type createTableRequest struct {
	TableID    int64    `json:"table_id" binding:"required"`
	SmallBlind int64    `json:"small_blind" binding:"required"`
	Stacks     [2]int64 `json:"stacks" binding:"required"`
}

type createTableResponse struct {
	TableID    int64 `json:"table_id"`
	SmallBlind int64 `json:"small_blind"`
	BigBlind   int64 `json:"big_blind"`
}

// CreateTableHandler handles POST /tables.
func (m *Manager) CreateTableHandler(c *gin.Context) {
	var req createTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	t, err := m.Create(req.TableID, req.SmallBlind, req.Stacks)
	if err != nil {
		status := http.StatusBadRequest
		if err == ErrTableExists {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error(), "code": ErrorCode(err)})
		return
	}

	c.JSON(http.StatusCreated, createTableResponse{
		TableID:    t.ID(),
		SmallBlind: req.SmallBlind,
		BigBlind:   req.SmallBlind * 2,
	})
}
