package token

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// secretKey 是用于签名JWT的密钥。
var secretKey []byte

// tokenTTL 是签发token的有效期。
var tokenTTL = time.Hour

var (
	// ErrInvalidToken 表示token无效、被篡改或已过期。
	ErrInvalidToken = errors.New("无效或已过期的token")
)

// Claims 定义了JWT中携带的数据。
// 与前端约定只携带用户ID。
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// Configure 在应用启动时设置签名密钥和token有效期。
// 如果secret为空，将生成一个密码学安全的随机密钥（重启后旧token失效）。
func Configure(secret string, ttlMinutes int) {
	if secret != "" {
		secretKey = []byte(secret)
	} else {
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic("无法生成安全的密钥: " + err.Error())
		}
		secretKey = key
		fmt.Printf("未配置JWT密钥，已生成随机密钥: %s...\n", base64.RawURLEncoding.EncodeToString(key[:6]))
	}

	if ttlMinutes > 0 {
		tokenTTL = time.Duration(ttlMinutes) * time.Minute
	}
}

// GenerateToken 为指定用户签发一个带有效期的HS256 token。
func GenerateToken(userID string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(secretKey)
	if err != nil {
		return "", fmt.Errorf("无法签发token: %w", err)
	}
	return signed, nil
}

// ValidateToken 验证token并返回其中携带的用户ID。
func ValidateToken(tokenString string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// 只接受HMAC签名，防止算法替换攻击
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("意外的签名算法: %v", t.Header["alg"])
		}
		return secretKey, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}
