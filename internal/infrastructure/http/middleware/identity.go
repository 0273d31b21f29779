package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/ozalperen/auth-service/internal/domain/entity"
)

// 컨텍스트 키 상수
const (
	UserIDKey = "user_id"
	UserKey   = "user"
)

// SetCurrentUser 검증이 끝난 사용자 정보를 요청 컨텍스트에 저장합니다
func SetCurrentUser(c echo.Context, user *entity.User) {
	if user == nil {
		return
	}
	c.Set(UserIDKey, user.ID)
	c.Set(UserKey, user)
}

// CurrentUser 요청 컨텍스트의 인증된 사용자 반환 (익명이면 nil)
func CurrentUser(c echo.Context) *entity.User {
	user, ok := c.Get(UserKey).(*entity.User)
	if !ok {
		return nil
	}
	return user
}
