package entity

// User 사용자 디렉토리가 제공하는 읽기 전용 사용자 형태입니다
// 이 코어는 감사 이벤트의 행위자/대상으로만 사용하며 수정하지 않습니다
type User struct {
	ID     string
	Email  string
	Role   string
	Status string
}

// IsActive 계정이 활성 상태인지 확인
func (u *User) IsActive() bool {
	return u.Status == "active"
}
