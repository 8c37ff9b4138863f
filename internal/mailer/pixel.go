package mailer

import (
	"fmt"
	"net/url"
	"strings"
)

// TrackingGIF ảnh GIF trong suốt 1x1 trả về cho mọi request tracking,
// kể cả khi không tìm thấy report khớp
var TrackingGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x01, 0x00, 0x01, 0x00, 0x80, 0x00,
	0x00, 0xff, 0xff, 0xff, 0x00, 0x00, 0x00, 0x2c, 0x00, 0x00, 0x00, 0x00,
	0x01, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x44, 0x01, 0x00, 0x3b,
}

// TrackingPixelTag dựng thẻ img pixel gắn vào cuối nội dung mail.
// Campaign chưa có pixel id dùng "none"; email luôn lowercase để khớp
// với report đã lưu.
func TrackingPixelTag(baseURL, trackingPixelID, recipientEmail string) string {
	if trackingPixelID == "" {
		trackingPixelID = "none"
	}
	return fmt.Sprintf(
		`<img src="%s/api/v1/track/%s?email=%s" width="1" height="1" alt="" style="display:none;" />`,
		strings.TrimRight(baseURL, "/"),
		trackingPixelID,
		url.QueryEscape(strings.ToLower(recipientEmail)),
	)
}
