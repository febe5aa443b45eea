package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User 定义了用户在数据库中的持久化模型。
type User struct {
	// ID 是用户的主键，UUID字符串。
	ID string `gorm:"primarykey;type:varchar(36)" json:"id"`

	// Email 是用户的登录凭证，全局唯一。
	Email string `gorm:"uniqueIndex;not null" json:"email"`

	// PasswordHash 是bcrypt哈希后的密码，永远不对外暴露。
	PasswordHash string `gorm:"not null" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate 在插入前为新用户分配UUID v7主键。
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		u.ID = id.String()
	}
	return nil
}
