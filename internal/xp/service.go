package xp

import (
	"fmt"

	"gorm.io/gorm"
)

// Service 封装了经验值账本的写入和聚合查询。
type Service struct {
	db *gorm.DB
}

// NewService 创建一个经验值服务实例。
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Award 在调用方提供的事务中追加一条账本记录。
// 任务状态更新和经验值写入必须落在同一个事务里，所以这里接收tx而不是用自己的db。
func (s *Service) Award(tx *gorm.DB, entry *XpLog) error {
	if err := tx.Create(entry).Error; err != nil {
		return fmt.Errorf("无法写入经验值账本: %w", err)
	}
	return nil
}

// TotalForUser 实时聚合一个用户的全部经验值。
func (s *Service) TotalForUser(userID string) (int64, error) {
	var total int64
	err := s.db.Model(&XpLog{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(xp_earned), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("无法聚合用户经验值: %w", err)
	}
	return total, nil
}

// TotalForSprint 实时聚合一个用户在某个冲刺内的经验值。
func (s *Service) TotalForSprint(userID, sprintID string) (int64, error) {
	var total int64
	err := s.db.Model(&XpLog{}).
		Where("user_id = ? AND sprint_id = ?", userID, sprintID).
		Select("COALESCE(SUM(xp_earned), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("无法聚合冲刺经验值: %w", err)
	}
	return total, nil
}
