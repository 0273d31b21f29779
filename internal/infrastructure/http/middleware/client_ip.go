package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/ozalperen/auth-service/internal/usecase"
)

// 클라이언트 IP 후보 헤더 (우선순위 순)
var clientIPHeaders = []string{
	"X-Real-IP",
	"CF-Connecting-IP",
	"X-Client-IP",
	"X-Cluster-Client-IP",
}

// ResolveClientIP는 프록시 헤더와 원격 주소에서 클라이언트 IP를 결정합니다.
// X-Forwarded-For의 첫 번째 항목이 최우선이며, 이후 단일 값 헤더를 순서대로
// 검사합니다. 어떤 후보도 유효하지 않으면 "unknown"을 반환합니다.
func ResolveClientIP(header http.Header, remoteAddr string) string {
	// X-Forwarded-For: 가장 왼쪽 항목이 원 클라이언트
	if forwarded := header.Get("X-Forwarded-For"); forwarded != "" {
		first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if ip := normalizeIP(first); ip != "" {
			return ip
		}
	}

	// 단일 값 프록시 헤더
	for _, name := range clientIPHeaders {
		if value := strings.TrimSpace(header.Get(name)); value != "" {
			if ip := normalizeIP(value); ip != "" {
				return ip
			}
		}
	}

	// 원격 주소 (포트 포함 가능)
	if ip := normalizeIP(remoteAddr); ip != "" {
		return ip
	}

	return "unknown"
}

// normalizeIP 후보 문자열을 검증 가능한 IP로 정규화합니다
// 포트와 IPv4-mapped IPv6 접두사를 제거하며, 유효하지 않으면 빈 문자열을 반환합니다
func normalizeIP(candidate string) string {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return ""
	}

	// host:port 형식이면 호스트만 취함
	if host, _, err := net.SplitHostPort(candidate); err == nil {
		candidate = host
	}

	// IPv4-mapped IPv6 접두사 제거
	candidate = strings.TrimPrefix(candidate, "::ffff:")

	if !usecase.IsValidIP(candidate) {
		return ""
	}
	return candidate
}

// ResolveUserAgent는 User-Agent 헤더를 추출합니다 (없으면 nil)
func ResolveUserAgent(header http.Header) *string {
	ua := header.Get("User-Agent")
	if ua == "" {
		return nil
	}
	return &ua
}
