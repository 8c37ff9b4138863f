package utility

import (
	"fmt"
	"regexp"
	"time"

	"email_marketing/internal/common"
	"email_marketing/internal/logger"
)

// GoProtect là một hàm bao bọc (wrapper) giúp bảo vệ một hàm khác khỏi bị panic.
// Nếu xảy ra panic trong hàm f(), GoProtect sẽ bắt lại và in ra lỗi thay vì làm chương trình dừng hẳn.
func GoProtect(f func()) {
	defer func() {
		// Sử dụng recover() để bắt lỗi panic nếu có
		if err := recover(); err != nil {
			fmt.Printf("Đã bắt lỗi panic: %v\n", err)
		}
	}()

	// Gọi hàm f() được truyền vào
	f()
}

// UnixMilli dùng để lấy mili giây của thời gian cho trước
func UnixMilli(t time.Time) int64 {
	return t.Round(time.Millisecond).UnixNano() / (int64(time.Millisecond) / int64(time.Nanosecond))
}

// CurrentTimeInMilli dùng để lấy thời gian hiện tại tính bằng mili giây
func CurrentTimeInMilli() int64 {
	return UnixMilli(time.Now())
}

// StartOfDay trả về 00:00:00.000 của ngày chứa t (theo location của t), tính bằng mili giây
func StartOfDay(t time.Time) int64 {
	y, m, d := t.Date()
	return UnixMilli(time.Date(y, m, d, 0, 0, 0, 0, t.Location()))
}

// EndOfDay trả về 23:59:59.999 của ngày chứa t (theo location của t), tính bằng mili giây
func EndOfDay(t time.Time) int64 {
	y, m, d := t.Date()
	return UnixMilli(time.Date(y, m, d, 23, 59, 59, 999000000, t.Location()))
}

// LogWarning ghi log cảnh báo với các thông tin bổ sung dạng key-value
func LogWarning(msg string, args ...interface{}) {
	fields := make(map[string]interface{})
	for i := 0; i < len(args); i += 2 {
		if i+1 < len(args) {
			if key, ok := args[i].(string); ok {
				fields[key] = args[i+1]
			}
		}
	}
	logger.GetAppLogger().WithFields(fields).Warn(msg)
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail kiểm tra định dạng email
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return common.ErrInvalidEmail
	}
	return nil
}
