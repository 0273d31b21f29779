package entity

// AuditAction 시스템에서 감사 가능한 이벤트 유형을 정의합니다
// 감사 로그 분류 및 필터링에 사용됩니다
type AuditAction string

const (
	// 인증 관련 감사 액션
	AuditActionLogin          AuditAction = "LOGIN"           // 사용자 로그인
	AuditActionLogout         AuditAction = "LOGOUT"          // 사용자 로그아웃
	AuditActionRegister       AuditAction = "REGISTER"        // 신규 사용자 등록
	AuditActionPasswordChange AuditAction = "PASSWORD_CHANGE" // 비밀번호 변경
	AuditActionPasswordReset  AuditAction = "PASSWORD_RESET"  // 비밀번호 재설정
	AuditActionEmailChange    AuditAction = "EMAIL_CHANGE"    // 이메일 변경
	AuditActionProfileUpdate  AuditAction = "PROFILE_UPDATE"  // 프로필 수정

	// 사용자 관리 감사 액션
	AuditActionUserCreate   AuditAction = "USER_CREATE"   // 관리자의 사용자 생성
	AuditActionUserUpdate   AuditAction = "USER_UPDATE"   // 관리자의 사용자 수정
	AuditActionUserDelete   AuditAction = "USER_DELETE"   // 관리자의 사용자 삭제
	AuditActionRoleChange   AuditAction = "ROLE_CHANGE"   // 역할 변경
	AuditActionStatusChange AuditAction = "STATUS_CHANGE" // 계정 상태 변경

	// 파일 관련 감사 액션
	AuditActionFileUpload AuditAction = "FILE_UPLOAD" // 파일 업로드
	AuditActionFileDelete AuditAction = "FILE_DELETE" // 파일 삭제

	// 세션 관련 감사 액션
	AuditActionSessionCreate AuditAction = "SESSION_CREATE" // 세션 생성
	AuditActionSessionDelete AuditAction = "SESSION_DELETE" // 세션 삭제

	// 접근 관련 감사 액션
	AuditActionAccessDenied AuditAction = "ACCESS_DENIED" // 접근 거부
	AuditActionAPIAccess    AuditAction = "API_ACCESS"    // 일반 API 접근
)

// validAuditActions 허용된 감사 액션의 닫힌 집합
var validAuditActions = map[AuditAction]struct{}{
	AuditActionLogin:          {},
	AuditActionLogout:         {},
	AuditActionRegister:       {},
	AuditActionPasswordChange: {},
	AuditActionPasswordReset:  {},
	AuditActionEmailChange:    {},
	AuditActionProfileUpdate:  {},
	AuditActionUserCreate:     {},
	AuditActionUserUpdate:     {},
	AuditActionUserDelete:     {},
	AuditActionRoleChange:     {},
	AuditActionStatusChange:   {},
	AuditActionFileUpload:     {},
	AuditActionFileDelete:     {},
	AuditActionSessionCreate:  {},
	AuditActionSessionDelete:  {},
	AuditActionAccessDenied:   {},
	AuditActionAPIAccess:      {},
}

// IsValid 액션이 닫힌 집합의 멤버인지 확인
func (a AuditAction) IsValid() bool {
	_, ok := validAuditActions[a]
	return ok
}

// String 문자열 표현 반환
func (a AuditAction) String() string {
	return string(a)
}
