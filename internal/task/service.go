package task

import (
	"errors"
	"fmt"
	"time"

	"github.com/SlpAus/skillsprint-backend/internal/xp"
	"gorm.io/gorm"
)

var (
	// ErrTaskNotFound 表示任务不存在。
	ErrTaskNotFound = errors.New("任务不存在")
	// ErrInvalidStatus 表示请求的状态不在枚举范围内。
	ErrInvalidStatus = errors.New("无效的任务状态")
	// ErrInvalidPriority 表示请求的优先级不在枚举范围内。
	ErrInvalidPriority = errors.New("无效的任务优先级")
)

// Service 封装了任务的增删改查和完成任务时的经验值结算。
type Service struct {
	db *gorm.DB
	xp *xp.Service
}

// NewService 创建一个任务服务实例。
func NewService(db *gorm.DB, xpService *xp.Service) *Service {
	return &Service{db: db, xp: xpService}
}

// Create 创建一个独立任务（旧模型，不属于任何冲刺）。
func (s *Service) Create(t *Task) error {
	if t.Status != "" && !t.Status.Valid() {
		return ErrInvalidStatus
	}
	if t.Priority != "" && !t.Priority.Valid() {
		return ErrInvalidPriority
	}
	if err := s.db.Create(t).Error; err != nil {
		return fmt.Errorf("无法创建任务: %w", err)
	}
	return nil
}

// List 返回所有任务，最新的在前。
func (s *Service) List() ([]Task, error) {
	var tasks []Task
	if err := s.db.Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("无法查询任务列表: %w", err)
	}
	return tasks, nil
}

// GetByID 按主键查询单个任务。
func (s *Service) GetByID(id string) (*Task, error) {
	var t Task
	err := s.db.First(&t, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("无法查询任务: %w", err)
	}
	return &t, nil
}

// ListByStatus 按状态过滤任务，最新的在前。
func (s *Service) ListByStatus(status Status) ([]Task, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	var tasks []Task
	err := s.db.Where("status = ?", status).Order("created_at DESC").Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("无法按状态查询任务: %w", err)
	}
	return tasks, nil
}

// Patch 描述一次部分更新：只有非nil的字段会被写入。
type Patch struct {
	Title       *string
	Description *string
	Status      *Status
	Priority    *Priority
	DueDate     *time.Time
}

// Apply 将补丁应用到任务上，只更新明确提供的字段。
// 若补丁使任务从未完成状态进入completed，会一并结算经验值。
func (s *Service) Apply(id string, patch Patch, userID string) (*Task, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return nil, ErrInvalidPriority
	}

	t, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	// 从补丁构造固定的更新语句，缺席的字段保持原值
	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if patch.Priority != nil {
		updates["priority"] = *patch.Priority
	}
	if patch.DueDate != nil {
		updates["due_date"] = *patch.DueDate
	}
	if len(updates) == 0 {
		return t, nil
	}

	completing := patch.Status != nil &&
		*patch.Status == StatusCompleted && t.Status != StatusCompleted

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(t).Updates(updates).Error; err != nil {
			return fmt.Errorf("无法更新任务: %w", err)
		}
		if completing {
			return s.awardCompletionXP(tx, t, userID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if completing {
		xp.BumpLeaderboard(userID, xp.RewardTaskCompleted)
	}
	return t, nil
}

// UpdateStatus 更新任务状态。
// 只有从未完成状态进入completed时才结算经验值，重复完成不会重复计分。
func (s *Service) UpdateStatus(id string, status Status, userID string) (*Task, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.Apply(id, Patch{Status: &status}, userID)
}

// Delete 删除一个任务并返回被删除的记录。
// 删除不会级联，也不会回收已结算的经验值。
func (s *Service) Delete(id string) (*Task, error) {
	t, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Delete(t).Error; err != nil {
		return nil, fmt.Errorf("无法删除任务: %w", err)
	}
	return t, nil
}

// awardCompletionXP 在tx中写入固定额度的经验值账本记录。
func (s *Service) awardCompletionXP(tx *gorm.DB, t *Task, userID string) error {
	entry := &xp.XpLog{
		UserID:    userID,
		SprintID:  t.SprintID,
		DayNumber: t.DayNumber,
		XpEarned:  xp.RewardTaskCompleted,
		Reason:    xp.ReasonTaskCompleted,
	}
	return s.xp.Award(tx, entry)
}
