package user

import (
	"fmt"

	"github.com/SlpAus/skillsprint-backend/internal/platform/database"
)

// PrimeDB 负责自动迁移user表结构，是user模块的初始化入口。
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&User{}); err != nil {
		return fmt.Errorf("无法迁移user表: %w", err)
	}
	fmt.Println("User数据库表迁移成功。")
	return nil
}
