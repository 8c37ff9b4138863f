// Package dto - TrackingParams (xem dto.delivery.send.go cho package doc).
package dto

import "strings"

// TrackingParams là params từ URL khi pixel tracking được tải.
// Endpoint: GET /api/v1/track/:trackingId?email=...
type TrackingParams struct {
	PixelID string // trackingPixelId của campaign, "none" với mail gửi lẻ
	Email   string // email người nhận, đã chuẩn hóa chữ thường
}

// NewTrackingParams chuẩn hóa params thô từ URL.
// Không validate chặt: pixel phải luôn được trả về kể cả khi params rác.
func NewTrackingParams(pixelID, email string) TrackingParams {
	return TrackingParams{
		PixelID: strings.TrimSpace(pixelID),
		Email:   strings.ToLower(strings.TrimSpace(email)),
	}
}

// Trackable cho biết params có đủ dữ liệu để ghi nhận lượt mở hay không
func (p TrackingParams) Trackable() bool {
	return p.PixelID != "" && p.PixelID != "none" && p.Email != ""
}
