package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL 固定 7 天，与 cookie 的 Max-Age 保持一致。
// 无服务端会话存储，过期前只能靠清 cookie 退出。
const SessionTTL = 7 * 24 * time.Hour

type Claims struct {
	UID string `json:"uid"`
	Imp string `json:"imp,omitempty"` // 模拟登录发起者（管理员）的 ID
	jwt.RegisteredClaims
}

type JWTer struct {
	Secret []byte
	Issuer string
}

func (j *JWTer) Issue(uid string) (string, error) {
	return j.issue(uid, "", SessionTTL)
}

// IssueImpersonated 为目标用户签发携带管理员标记的令牌
func (j *JWTer) IssueImpersonated(uid, impersonatorID string) (string, error) {
	return j.issue(uid, impersonatorID, SessionTTL)
}

func (j *JWTer) issue(uid, imp string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UID: uid,
		Imp: imp,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

func (j *JWTer) Parse(tokenStr string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected alg")
		}
		return j.Secret, nil
	}, jwt.WithIssuer(j.Issuer), jwt.WithLeeway(60*time.Second))

	if err != nil {
		return nil, err
	}
	if c, ok := t.Claims.(*Claims); ok && t.Valid {
		return c, nil
	}
	return nil, errors.New("invalid token")
}
