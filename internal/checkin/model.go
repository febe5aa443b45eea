package checkin

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Checkin 是冲刺中某一天的打卡反思记录。
type Checkin struct {
	ID string `gorm:"primarykey;type:varchar(36)" json:"id"`

	SprintID  string `gorm:"type:varchar(36);not null;index" json:"sprint_id"`
	DayNumber int    `gorm:"not null" json:"day_number"`

	ReflectionText string `json:"reflection_text"`
	Mood           string `json:"mood"`
	TaskDifficulty string `json:"task_difficulty"`

	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate 在插入前为打卡记录分配UUID v7主键。
func (ck *Checkin) BeforeCreate(tx *gorm.DB) error {
	if ck.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		ck.ID = id.String()
	}
	return nil
}
