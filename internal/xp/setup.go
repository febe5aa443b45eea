package xp

import (
	"fmt"

	"github.com/SlpAus/skillsprint-backend/internal/platform/database"
)

// migrateDB 负责自动迁移xp_logs表结构
func migrateDB() error {
	if err := database.DB.AutoMigrate(&XpLog{}); err != nil {
		return fmt.Errorf("无法迁移xp_logs表: %w", err)
	}
	fmt.Println("XpLog数据库表迁移成功。")
	return nil
}

// WarmupCache 从账本重建Redis排行榜。
// 健康检查器在检测到Redis重启后也会调用它。
func WarmupCache() error {
	if !database.RedisEnabled() {
		fmt.Println("未启用Redis，跳过排行榜预热。")
		return nil
	}
	return rebuildLeaderboard(database.DB)
}

// PrimeCachedDB 是xp模块的初始化总入口
func PrimeCachedDB() error {
	if err := migrateDB(); err != nil {
		return err
	}
	if err := WarmupCache(); err != nil {
		return err
	}
	return nil
}
