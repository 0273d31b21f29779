package usecase

import (
	"crypto/rand"
	"math/big"
	"net"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// 무작위 문자열 생성에 사용하는 문자 집합
const randomCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// IP 주소에 허용되지 않는 문자 (16진수, 콜론, 점 이외 전부)
var invalidIPChars = regexp.MustCompile(`[^a-fA-F0-9:.]`)

// GenerateRandomString 지정 길이의 무작위 문자열 생성
func GenerateRandomString(length int) (string, error) {
	b := make([]byte, length)
	for i := range b {
		randIndex, err := rand.Int(rand.Reader, big.NewInt(int64(len(randomCharset))))
		if err != nil {
			return "", err
		}
		b[i] = randomCharset[randIndex.Int64()]
	}
	return string(b), nil
}

// HashSecret 시크릿의 bcrypt 해시 생성
func HashSecret(secret string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CompareSecret 시크릿과 해시 비교
func CompareSecret(hash, secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}

// IsValidIP 구문적으로 올바른 IPv4/IPv6 주소인지 검사
func IsValidIP(ip string) bool {
	return net.ParseIP(ip) != nil
}

// SanitizeIP IP 주소에 허용되지 않는 문자를 제거합니다
// 정제 후에도 유효하지 않으면 "unknown"을 반환합니다
func SanitizeIP(ip string) string {
	cleaned := invalidIPChars.ReplaceAllString(strings.TrimSpace(ip), "")
	if cleaned == "" {
		return "unknown"
	}
	if !IsValidIP(cleaned) {
		return "unknown"
	}
	return cleaned
}
