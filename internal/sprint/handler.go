package sprint

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/SlpAus/skillsprint-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// Handler 将冲刺相关的HTTP请求映射到Service。
type Handler struct {
	service *Service
}

// NewHandler 创建一个冲刺Handler。
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createSprintRequest struct {
	Title           string `json:"title" binding:"required"`
	GoalDescription string `json:"goal_description" binding:"required,min=10"`
	DurationDays    int    `json:"duration_days" binding:"required,min=1,max=30"`
	// StartDate 可选，RFC3339格式，默认为当前时间
	StartDate string `json:"start_date"`
}

// Create 处理 POST /api/sprints
func (h *Handler) Create(c *gin.Context) {
	var req createSprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Validation failed", "details": err.Error()})
		return
	}

	var startDate time.Time
	if req.StartDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid start_date"})
			return
		}
		startDate = parsed
	}

	newSprint, taskCount, err := h.service.Create(c.Request.Context(), CreateInput{
		UserID:          user.CurrentUserID(c),
		Title:           req.Title,
		GoalDescription: req.GoalDescription,
		DurationDays:    req.DurationDays,
		StartDate:       startDate,
	})
	if err != nil {
		// 生成服务失败或落库失败都已回滚，统一报告内部错误
		fmt.Printf("创建冲刺失败: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"message":   "Sprint and tasks created successfully",
		"sprintId":  newSprint.ID,
		"taskCount": taskCount,
	})
}

// List 处理 GET /api/sprints
func (h *Handler) List(c *gin.Context) {
	sprints, err := h.service.ListForUser(user.CurrentUserID(c))
	if err != nil {
		fmt.Printf("查询冲刺列表失败: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch sprints"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": sprints, "count": len(sprints)})
}

// GetByID 处理 GET /api/sprints/:id
func (h *Handler) GetByID(c *gin.Context) {
	sp, tasks, err := h.service.GetForUser(user.CurrentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrSprintNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Sprint not found"})
			return
		}
		fmt.Printf("查询冲刺失败: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch sprint"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"sprint": sp, "tasks": tasks}})
}
