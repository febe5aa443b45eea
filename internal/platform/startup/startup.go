package startup

import (
	"fmt"

	"github.com/SlpAus/skillsprint-backend/internal/checkin"
	"github.com/SlpAus/skillsprint-backend/internal/sprint"
	"github.com/SlpAus/skillsprint-backend/internal/task"
	"github.com/SlpAus/skillsprint-backend/internal/user"
	"github.com/SlpAus/skillsprint-backend/internal/xp"
)

// InitializeApplication 是应用首次启动时执行的总入口，
// 按依赖顺序迁移各模块的表结构并预热派生缓存。
func InitializeApplication() error {
	fmt.Println("开始应用首次初始化...")

	if err := user.PrimeDB(); err != nil {
		return err
	}
	if err := sprint.PrimeDB(); err != nil {
		return err
	}
	if err := task.PrimeDB(); err != nil {
		return err
	}
	if err := checkin.PrimeDB(); err != nil {
		return err
	}
	if err := xp.PrimeCachedDB(); err != nil {
		return err
	}

	fmt.Println("应用初始化完成！")
	return nil
}

// RebuildCache 在运行时热重建Redis中的全部派生数据。
// 健康检查器检测到Redis重启后会调用它。
func RebuildCache() error {
	fmt.Println("开始缓存热重建...")
	if err := xp.WarmupCache(); err != nil {
		return err
	}
	fmt.Println("缓存热重建完成。")
	return nil
}
