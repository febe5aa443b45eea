package user

import (
	"errors"
	"fmt"

	"github.com/SlpAus/skillsprint-backend/pkg/token"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// bcryptCost 与线上已有的密码哈希保持一致，不要随意调整。
const bcryptCost = 12

var (
	// ErrEmailTaken 表示注册邮箱已被占用。
	ErrEmailTaken = errors.New("邮箱已被注册")
	// ErrInvalidCredentials 表示邮箱或密码错误。
	// 两种情况返回同一个错误，避免泄露邮箱是否存在。
	ErrInvalidCredentials = errors.New("无效的凭证")
	// ErrUserNotFound 表示用户不存在。
	ErrUserNotFound = errors.New("用户不存在")
)

// Service 封装了用户注册、登录等业务逻辑。
type Service struct {
	db *gorm.DB
}

// NewService 创建一个用户服务实例。
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Register 创建一个新用户，密码经bcrypt哈希后入库。
func (s *Service) Register(email, password string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("无法哈希密码: %w", err)
	}

	newUser := User{Email: email, PasswordHash: string(hash)}
	if err := s.db.Create(&newUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("无法创建用户: %w", err)
	}
	return &newUser, nil
}

// Login 验证凭证并签发一个带有效期的bearer token。
func (s *Service) Login(email, password string) (string, error) {
	var u User
	err := s.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("无法查询用户: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	signed, err := token.GenerateToken(u.ID)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// GetByID 按主键查询单个用户。
func (s *Service) GetByID(id string) (*User, error) {
	var u User
	err := s.db.First(&u, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("无法查询用户: %w", err)
	}
	return &u, nil
}
