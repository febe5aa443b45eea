package task

import (
	"fmt"

	"github.com/SlpAus/skillsprint-backend/internal/platform/database"
)

// PrimeDB 负责自动迁移tasks表结构，是task模块的初始化入口。
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&Task{}); err != nil {
		return fmt.Errorf("无法迁移tasks表: %w", err)
	}
	fmt.Println("Task数据库表迁移成功。")
	return nil
}
