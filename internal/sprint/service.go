package sprint

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SlpAus/skillsprint-backend/internal/generator"
	"github.com/SlpAus/skillsprint-backend/internal/task"
	"gorm.io/gorm"
)

var (
	// ErrSprintNotFound 表示冲刺不存在或不属于当前用户。
	ErrSprintNotFound = errors.New("冲刺不存在")
)

// Service 编排冲刺的创建流程：落库冲刺、调用计划生成服务、批量落库任务。
type Service struct {
	db  *gorm.DB
	gen generator.Client
}

// NewService 创建一个冲刺服务实例。
func NewService(db *gorm.DB, gen generator.Client) *Service {
	return &Service{db: db, gen: gen}
}

// CreateInput 是创建冲刺所需的全部输入，在Handler层完成形状校验。
type CreateInput struct {
	UserID          string
	Title           string
	GoalDescription string
	DurationDays    int
	StartDate       time.Time
}

// Create 在单个事务中创建冲刺和它的全部任务。
// 生成服务失败会回滚冲刺本身，不会留下没有任务的孤儿冲刺。
func (s *Service) Create(ctx context.Context, input CreateInput) (*Sprint, int, error) {
	if input.StartDate.IsZero() {
		input.StartDate = time.Now()
	}

	newSprint := Sprint{
		UserID:          input.UserID,
		Title:           input.Title,
		GoalDescription: input.GoalDescription,
		DurationDays:    input.DurationDays,
		StartDate:       input.StartDate,
	}

	taskCount := 0
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// 1. 先落库冲刺，拿到生成的主键
		if err := tx.Create(&newSprint).Error; err != nil {
			return fmt.Errorf("无法创建冲刺: %w", err)
		}

		// 2. 请求逐日任务拆解，这是整个流程中唯一的慢调用
		plan, err := s.gen.GeneratePlan(ctx, input.GoalDescription, input.DurationDays)
		if err != nil {
			return err
		}

		// 3. 为每个任务描述落库一条任务记录，关联到新冲刺
		tasks := make([]task.Task, 0, len(plan))
		for _, p := range plan {
			day := p.Day
			tasks = append(tasks, task.Task{
				SprintID:    &newSprint.ID,
				DayNumber:   &day,
				Title:       p.Title,
				Description: p.Description,
				Status:      task.StatusTodo,
				Resources:   task.StringList(p.Resources),
			})
		}
		if err := tx.Create(&tasks).Error; err != nil {
			return fmt.Errorf("无法创建冲刺任务: %w", err)
		}

		taskCount = len(tasks)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	return &newSprint, taskCount, nil
}

// ListForUser 返回一个用户的全部冲刺，最新的在前。
func (s *Service) ListForUser(userID string) ([]Sprint, error) {
	var sprints []Sprint
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&sprints).Error
	if err != nil {
		return nil, fmt.Errorf("无法查询冲刺列表: %w", err)
	}
	return sprints, nil
}

// GetForUser 返回一个冲刺和它按天排序的任务列表。
// 冲刺不存在或不属于该用户时返回 ErrSprintNotFound。
func (s *Service) GetForUser(userID, sprintID string) (*Sprint, []task.Task, error) {
	var sp Sprint
	err := s.db.First(&sp, "id = ? AND user_id = ?", sprintID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrSprintNotFound
		}
		return nil, nil, fmt.Errorf("无法查询冲刺: %w", err)
	}

	var tasks []task.Task
	err = s.db.Where("sprint_id = ?", sp.ID).Order("day_number ASC").Find(&tasks).Error
	if err != nil {
		return nil, nil, fmt.Errorf("无法查询冲刺任务: %w", err)
	}
	return &sp, tasks, nil
}

// Exists 报告一个冲刺是否存在且属于指定用户。
func (s *Service) Exists(userID, sprintID string) (bool, error) {
	var count int64
	err := s.db.Model(&Sprint{}).Where("id = ? AND user_id = ?", sprintID, userID).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("无法查询冲刺: %w", err)
	}
	return count > 0, nil
}
