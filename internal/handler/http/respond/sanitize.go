package respond

import (
	"regexp"
)

var (
	// メール送信APIキーパターン
	resendKeyPattern = regexp.MustCompile(`re_[a-zA-Z0-9_]{10,}`)
	// Authorizationヘッダー等に含まれるBearerトークン
	bearerTokenPattern = regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9._\-]+`)

	// URL内の認証情報（user:pass@host）
	urlCredentialsPattern = regexp.MustCompile(`://([^:/]+):([^@/]+)@`)
)

// SanitizeError は機密情報をマスクしたエラーメッセージを返す
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()

	// APIキーのマスク
	msg = resendKeyPattern.ReplaceAllString(msg, "re_****")
	msg = bearerTokenPattern.ReplaceAllString(msg, "Bearer ****")

	// URL内の認証情報のマスク
	msg = urlCredentialsPattern.ReplaceAllString(msg, "://$1:****@")

	return msg
}
