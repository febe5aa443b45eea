package checkin

import (
	"fmt"

	"github.com/SlpAus/skillsprint-backend/internal/platform/database"
)

// PrimeDB 负责自动迁移checkins表结构，是checkin模块的初始化入口。
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&Checkin{}); err != nil {
		return fmt.Errorf("无法迁移checkins表: %w", err)
	}
	fmt.Println("Checkin数据库表迁移成功。")
	return nil
}
