package sprint

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sprint 是一个用户定义的、有固定天数的学习目标。
// 它与自己的任务集合在同一个事务中创建。
type Sprint struct {
	ID string `gorm:"primarykey;type:varchar(36)" json:"id"`

	UserID string `gorm:"type:varchar(36);not null;index" json:"user_id"`

	Title           string `gorm:"not null" json:"title"`
	GoalDescription string `gorm:"not null" json:"goal_description"`

	// DurationDays 取值范围 [1, 30]，在入口处校验。
	DurationDays int `gorm:"not null" json:"duration_days"`

	StartDate time.Time `json:"start_date"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate 在插入前为冲刺分配UUID v7主键。
func (s *Sprint) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		s.ID = id.String()
	}
	return nil
}
