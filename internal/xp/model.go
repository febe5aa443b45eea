package xp

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RewardTaskCompleted 是完成一个任务获得的固定经验值。
const RewardTaskCompleted = 10

// ReasonTaskCompleted 是任务完成时写入账本的固定理由。
const ReasonTaskCompleted = "Completed task"

// XpLog 是经验值账本中的一条记录。
// 账本只追加，永不更新或删除；用户的总经验值永远是账本的实时聚合，
// 不维护任何冗余计数器。
type XpLog struct {
	ID string `gorm:"primarykey;type:varchar(36)" json:"id"`

	UserID string `gorm:"type:varchar(36);not null;index" json:"user_id"`

	// SprintID 和 DayNumber 标记经验值来源，独立任务完成时为空。
	SprintID  *string `gorm:"type:varchar(36);index" json:"sprint_id"`
	DayNumber *int    `json:"day_number"`

	XpEarned int    `gorm:"not null" json:"xp_earned"`
	Reason   string `gorm:"not null" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate 在插入前为账本记录分配UUID v7主键。
func (l *XpLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		l.ID = id.String()
	}
	return nil
}
