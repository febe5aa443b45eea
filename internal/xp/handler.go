package xp

import (
	"fmt"
	"net/http"

	"github.com/SlpAus/skillsprint-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// 排行榜默认展示的名次数量
const leaderboardSize = 10

// Handler 将经验值相关的HTTP请求映射到Service。
type Handler struct {
	service *Service
}

// NewHandler 创建一个经验值Handler。
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// TotalXP 处理 GET /api/users/xp/total
func (h *Handler) TotalXP(c *gin.Context) {
	total, err := h.service.TotalForUser(user.CurrentUserID(c))
	if err != nil {
		fmt.Printf("查询总经验值失败: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch total XP"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "totalXp": total})
}

// SprintXP 处理 GET /api/users/xp/sprint/:sprintId
func (h *Handler) SprintXP(c *gin.Context) {
	total, err := h.service.TotalForSprint(user.CurrentUserID(c), c.Param("sprintId"))
	if err != nil {
		fmt.Printf("查询冲刺经验值失败: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch sprint XP"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "sprintXp": total})
}

// Leaderboard 处理 GET /api/xp/leaderboard
func (h *Handler) Leaderboard(c *gin.Context) {
	entries, err := TopLeaderboard(leaderboardSize)
	if err != nil {
		fmt.Printf("读取排行榜失败: %v\n", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "Leaderboard unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": entries})
}
