package mailer

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	listmodels "email_marketing/internal/api/list/models"
)

// NextBatch cắt lô người nhận kế tiếp theo marker resume.
// resumeAfter nil -> bắt đầu từ đầu danh sách; marker không còn trong danh
// sách (người nhận đã bị xóa) -> cũng quay về đầu, chấp nhận khả năng gửi
// lặp thay vì bỏ sót. Trả về lô cần gửi và chỉ số bắt đầu trong danh sách.
func NextBatch(subs []listmodels.Subscriber, resumeAfter *primitive.ObjectID, limit int) ([]listmodels.Subscriber, int) {
	if limit <= 0 {
		limit = 1
	}
	startIdx := 0
	if resumeAfter != nil {
		for i, sub := range subs {
			if sub.ID == *resumeAfter {
				startIdx = i + 1
				break
			}
		}
	}
	if startIdx >= len(subs) {
		return nil, startIdx
	}
	endIdx := startIdx + limit
	if endIdx > len(subs) {
		endIdx = len(subs)
	}
	return subs[startIdx:endIdx], startIdx
}

// Exhausted cho biết sau lô bắt đầu tại startIdx với giới hạn limit,
// danh sách đã hết người nhận chưa
func Exhausted(startIdx, limit, total int) bool {
	if limit <= 0 {
		limit = 1
	}
	return startIdx+limit >= total
}
