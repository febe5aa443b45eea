package xp

import (
	"fmt"

	"github.com/SlpAus/skillsprint-backend/internal/platform/database"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// LeaderboardKey 是一个 Redis Sorted Set 的键，用于存储经验值排名。
// Score: 用户的总经验值
// Member: 用户的ID
// 这是一个派生缓存：xp_logs表才是唯一的事实来源，
// 该ZSet在启动时和检测到Redis重启后从账本全量重建。
const LeaderboardKey = "xp:leaderboard"

// LeaderboardEntry 是排行榜中的一行。
type LeaderboardEntry struct {
	UserID  string `json:"userId"`
	TotalXp int64  `json:"totalXp"`
}

// BumpLeaderboard 在用户获得经验值后增加其排行榜分数。
// 这是尽力而为的操作：账本已落库，Redis失败只影响排行榜的实时性，
// 不能让任务完成请求失败。
func BumpLeaderboard(userID string, delta int) {
	if !database.RedisEnabled() {
		return
	}
	if err := database.RDB.ZIncrBy(database.Ctx, LeaderboardKey, float64(delta), userID).Err(); err != nil {
		fmt.Printf("警告: 更新排行榜失败（将在下次重建时修正）: %v\n", err)
	}
}

// TopLeaderboard 返回经验值最高的前n名用户。
func TopLeaderboard(n int64) ([]LeaderboardEntry, error) {
	if !database.RedisEnabled() {
		return nil, fmt.Errorf("排行榜不可用：未启用Redis")
	}

	results, err := database.RDB.ZRevRangeWithScores(database.Ctx, LeaderboardKey, 0, n-1).Result()
	if err != nil {
		return nil, fmt.Errorf("无法读取排行榜: %w", err)
	}

	entries := make([]LeaderboardEntry, 0, len(results))
	for _, z := range results {
		member, _ := z.Member.(string)
		entries = append(entries, LeaderboardEntry{UserID: member, TotalXp: int64(z.Score)})
	}
	return entries, nil
}

// rebuildLeaderboard 从xp_logs账本全量重建排行榜ZSet。
func rebuildLeaderboard(db *gorm.DB) error {
	type row struct {
		UserID string
		Total  int64
	}
	var rows []row
	err := db.Model(&XpLog{}).
		Select("user_id, SUM(xp_earned) AS total").
		Group("user_id").
		Scan(&rows).Error
	if err != nil {
		return fmt.Errorf("无法从账本聚合排行榜数据: %w", err)
	}

	// 使用Pipeline先清空旧的ZSet，再批量写入所有成员
	pipe := database.RDB.Pipeline()
	pipe.Del(database.Ctx, LeaderboardKey)
	if len(rows) > 0 {
		members := make([]redis.Z, len(rows))
		for i, r := range rows {
			members[i] = redis.Z{Score: float64(r.Total), Member: r.UserID}
		}
		pipe.ZAdd(database.Ctx, LeaderboardKey, members...)
	}

	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("重建排行榜到Redis失败: %w", err)
	}

	fmt.Printf("成功重建排行榜，共 %d 个用户。\n", len(rows))
	return nil
}
