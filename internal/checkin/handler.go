package checkin

import (
	"fmt"
	"net/http"

	"github.com/SlpAus/skillsprint-backend/internal/sprint"
	"github.com/SlpAus/skillsprint-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// Handler 将打卡相关的HTTP请求映射到Service。
// 它依赖sprint服务来校验冲刺的存在性和归属。
type Handler struct {
	service *Service
	sprints *sprint.Service
}

// NewHandler 创建一个打卡Handler。
func NewHandler(service *Service, sprints *sprint.Service) *Handler {
	return &Handler{service: service, sprints: sprints}
}

type createCheckinRequest struct {
	DayNumber      int    `json:"day_number" binding:"required,min=1"`
	ReflectionText string `json:"reflection_text" binding:"required"`
	Mood           string `json:"mood" binding:"required"`
	TaskDifficulty string `json:"task_difficulty" binding:"required"`
}

// Create 处理 POST /api/sprints/:id/checkins
func (h *Handler) Create(c *gin.Context) {
	var req createCheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Validation failed", "details": err.Error()})
		return
	}

	sprintID := c.Param("id")
	if !h.ownsSprint(c, sprintID) {
		return
	}

	ck := Checkin{
		SprintID:       sprintID,
		DayNumber:      req.DayNumber,
		ReflectionText: req.ReflectionText,
		Mood:           req.Mood,
		TaskDifficulty: req.TaskDifficulty,
	}
	if err := h.service.Create(&ck); err != nil {
		fmt.Printf("创建打卡记录失败: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create checkin"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": ck})
}

// List 处理 GET /api/sprints/:id/checkins
func (h *Handler) List(c *gin.Context) {
	sprintID := c.Param("id")
	if !h.ownsSprint(c, sprintID) {
		return
	}

	checkins, err := h.service.ListForSprint(sprintID)
	if err != nil {
		fmt.Printf("查询打卡记录失败: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch checkins"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": checkins, "count": len(checkins)})
}

// ownsSprint 校验冲刺存在且属于当前用户，否则直接响应404。
func (h *Handler) ownsSprint(c *gin.Context, sprintID string) bool {
	exists, err := h.sprints.Exists(user.CurrentUserID(c), sprintID)
	if err != nil {
		fmt.Printf("校验冲刺归属失败: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to verify sprint"})
		return false
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Sprint not found"})
		return false
	}
	return true
}
