package task

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status 是任务的状态枚举。
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Valid 报告s是否为三个已知状态之一。
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Priority 是任务的优先级枚举。
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid 报告p是否为三个已知优先级之一。
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// StringList 是一个有序字符串列表，在数据库中以JSON文本存储。
// 用于任务的学习资源链接。
type StringList []string

// Value 实现 driver.Valuer，序列化为JSON写入TEXT列。
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan 实现 sql.Scanner，从TEXT列反序列化。
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("无法将 %T 扫描为StringList", value)
	}
	if len(data) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

// Task 是一个冲刺内的单日任务，或旧模型下的独立任务。
type Task struct {
	ID string `gorm:"primarykey;type:varchar(36)" json:"id"`

	// SprintID 为空表示旧模型下的独立任务。
	SprintID  *string `gorm:"type:varchar(36);index" json:"sprint_id"`
	DayNumber *int    `json:"day_number"`

	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`

	Status   Status   `gorm:"type:varchar(20);not null;default:todo;index" json:"status"`
	Priority Priority `gorm:"type:varchar(10);not null;default:medium" json:"priority"`

	DueDate   *time.Time `json:"due_date"`
	Resources StringList `gorm:"type:text" json:"resources"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate 在插入前分配UUID v7主键并补齐默认值。
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		t.ID = id.String()
	}
	if t.Status == "" {
		t.Status = StatusTodo
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.Resources == nil {
		t.Resources = StringList{}
	}
	return nil
}
