// Package mailer - lõi gửi mail của hệ thống: render nội dung,
// chọn người nhận theo marker, gửi batch và chạy lượt cron.
package mailer

import (
	"regexp"
	"strings"

	listmodels "email_marketing/internal/api/list/models"
)

// placeholderRegex khớp placeholder dạng {{ key }} trong nội dung template
var placeholderRegex = regexp.MustCompile(`\{\{\s*(\w+)\s*\}\}`)

// ReplaceVariables thay mọi placeholder {{key}} có trong variables.
// Placeholder không có giá trị được giữ nguyên dạng chữ trong kết quả.
func ReplaceVariables(content string, variables map[string]string) string {
	return placeholderRegex.ReplaceAllStringFunc(content, func(match string) string {
		key := placeholderRegex.FindStringSubmatch(match)[1]
		if value, ok := variables[key]; ok {
			return value
		}
		return match
	})
}

// ExtractVariables liệt kê tên placeholder xuất hiện trong nội dung,
// bỏ trùng, giữ thứ tự xuất hiện đầu tiên.
func ExtractVariables(content string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, match := range placeholderRegex.FindAllStringSubmatch(content, -1) {
		name := match[1]
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// SubscriberVariables dựng map biến cho một người nhận: các trường cố định
// (firstName/lastName suy ra từ name khi thiếu) phủ lên map mở rộng của
// subscriber; trường cố định thắng khi trùng khóa.
func SubscriberVariables(sub listmodels.Subscriber) map[string]string {
	firstName, lastName := splitName(sub.Name)
	variables := make(map[string]string, len(sub.Variables)+7)
	for key, value := range sub.Variables {
		variables[key] = value
	}
	variables["firstName"] = firstName
	variables["lastName"] = lastName
	variables["name"] = sub.Name
	variables["email"] = sub.Email
	variables["company"] = sub.CompanyName
	variables["websiteUrl"] = sub.WebsiteURL
	variables["notes"] = sub.Notes
	return variables
}

func splitName(name string) (string, string) {
	first, last, found := strings.Cut(strings.TrimSpace(name), " ")
	if !found {
		return first, ""
	}
	return first, strings.TrimSpace(last)
}
