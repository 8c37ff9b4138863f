// Package mailer - Test render biến template.
package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	listmodels "email_marketing/internal/api/list/models"
)

func TestReplaceVariables(t *testing.T) {
	variables := map[string]string{
		"firstName": "Minh",
		"company":   "Folkgroup",
	}

	t.Run("Thay placeholder có giá trị", func(t *testing.T) {
		got := ReplaceVariables("Chào {{firstName}} từ {{company}}!", variables)
		assert.Equal(t, "Chào Minh từ Folkgroup!", got)
	})

	t.Run("Placeholder có khoảng trắng vẫn khớp", func(t *testing.T) {
		got := ReplaceVariables("Chào {{ firstName }}", variables)
		assert.Equal(t, "Chào Minh", got)
	})

	t.Run("Placeholder không có giá trị giữ nguyên dạng chữ", func(t *testing.T) {
		got := ReplaceVariables("Mã của bạn: {{couponCode}}", variables)
		assert.Equal(t, "Mã của bạn: {{couponCode}}", got)
	})

	t.Run("Render hai lần cho cùng kết quả", func(t *testing.T) {
		once := ReplaceVariables("{{firstName}} - {{unknown}}", variables)
		twice := ReplaceVariables(once, variables)
		assert.Equal(t, once, twice)
	})
}

func TestExtractVariables(t *testing.T) {
	t.Run("Bỏ trùng, giữ thứ tự xuất hiện", func(t *testing.T) {
		got := ExtractVariables("<p>{{firstName}} {{company}} {{firstName}}</p>")
		assert.Equal(t, []string{"firstName", "company"}, got)
	})

	t.Run("Nội dung không có biến", func(t *testing.T) {
		assert.Empty(t, ExtractVariables("<p>Xin chào</p>"))
	})
}

func TestSubscriberVariables(t *testing.T) {
	t.Run("firstName/lastName suy ra từ name", func(t *testing.T) {
		sub := listmodels.Subscriber{
			Name:  "Nguyen Van A",
			Email: "a@example.com",
		}
		variables := SubscriberVariables(sub)
		assert.Equal(t, "Nguyen", variables["firstName"])
		assert.Equal(t, "Van A", variables["lastName"])
		assert.Equal(t, "a@example.com", variables["email"])
	})

	t.Run("Name một từ thì lastName rỗng", func(t *testing.T) {
		variables := SubscriberVariables(listmodels.Subscriber{Name: "Minh"})
		assert.Equal(t, "Minh", variables["firstName"])
		assert.Equal(t, "", variables["lastName"])
	})

	t.Run("Trường cố định thắng map mở rộng khi trùng khóa", func(t *testing.T) {
		sub := listmodels.Subscriber{
			Name:      "Nguyen Van A",
			Variables: map[string]string{"firstName": "Khác", "couponCode": "SALE50"},
		}
		variables := SubscriberVariables(sub)
		assert.Equal(t, "Nguyen", variables["firstName"])
		assert.Equal(t, "SALE50", variables["couponCode"])
	})
}
