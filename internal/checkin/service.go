package checkin

import (
	"fmt"

	"gorm.io/gorm"
)

// Service 封装了打卡记录的写入和查询。
type Service struct {
	db *gorm.DB
}

// NewService 创建一个打卡服务实例。
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Create 写入一条打卡记录。冲刺归属校验由Handler层借助sprint模块完成。
func (s *Service) Create(ck *Checkin) error {
	if err := s.db.Create(ck).Error; err != nil {
		return fmt.Errorf("无法创建打卡记录: %w", err)
	}
	return nil
}

// ListForSprint 返回一个冲刺的全部打卡记录，按天排序。
func (s *Service) ListForSprint(sprintID string) ([]Checkin, error) {
	var checkins []Checkin
	err := s.db.Where("sprint_id = ?", sprintID).Order("day_number ASC").Find(&checkins).Error
	if err != nil {
		return nil, fmt.Errorf("无法查询打卡记录: %w", err)
	}
	return checkins, nil
}
