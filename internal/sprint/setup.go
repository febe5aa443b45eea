package sprint

import (
	"fmt"

	"github.com/SlpAus/skillsprint-backend/internal/platform/database"
)

// PrimeDB 负责自动迁移sprints表结构，是sprint模块的初始化入口。
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&Sprint{}); err != nil {
		return fmt.Errorf("无法迁移sprints表: %w", err)
	}
	fmt.Println("Sprint数据库表迁移成功。")
	return nil
}
