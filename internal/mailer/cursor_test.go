// Package mailer - Test cắt lô theo marker resume.
package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	listmodels "email_marketing/internal/api/list/models"
)

func makeSubscribers(n int) []listmodels.Subscriber {
	subs := make([]listmodels.Subscriber, n)
	for i := range subs {
		subs[i] = listmodels.Subscriber{
			ID:          primitive.NewObjectID(),
			Email:       "user" + string(rune('a'+i)) + "@example.com",
			EmailStatus: listmodels.EmailStatusRight,
		}
	}
	return subs
}

func TestNextBatch(t *testing.T) {
	subs := makeSubscribers(5)

	t.Run("Marker nil bắt đầu từ đầu danh sách", func(t *testing.T) {
		batch, startIdx := NextBatch(subs, nil, 2)
		assert.Equal(t, 0, startIdx)
		assert.Len(t, batch, 2)
		assert.Equal(t, subs[0].ID, batch[0].ID)
	})

	t.Run("Marker giữa danh sách tiếp tục ngay sau nó", func(t *testing.T) {
		batch, startIdx := NextBatch(subs, &subs[1].ID, 2)
		assert.Equal(t, 2, startIdx)
		assert.Len(t, batch, 2)
		assert.Equal(t, subs[2].ID, batch[0].ID)
	})

	t.Run("Marker ở cuối trả về lô rỗng", func(t *testing.T) {
		batch, startIdx := NextBatch(subs, &subs[4].ID, 2)
		assert.Equal(t, 5, startIdx)
		assert.Empty(t, batch)
	})

	t.Run("Marker không còn trong danh sách quay về đầu", func(t *testing.T) {
		removed := primitive.NewObjectID()
		batch, startIdx := NextBatch(subs, &removed, 3)
		assert.Equal(t, 0, startIdx)
		assert.Len(t, batch, 3)
		assert.Equal(t, subs[0].ID, batch[0].ID)
	})

	t.Run("Limit vượt quá phần còn lại thì cắt tới hết", func(t *testing.T) {
		batch, startIdx := NextBatch(subs, &subs[2].ID, 10)
		assert.Equal(t, 3, startIdx)
		assert.Len(t, batch, 2)
	})

	t.Run("Limit không dương coi như 1", func(t *testing.T) {
		batch, _ := NextBatch(subs, nil, 0)
		assert.Len(t, batch, 1)
	})
}

func TestExhausted(t *testing.T) {
	assert.False(t, Exhausted(0, 2, 3))
	assert.True(t, Exhausted(2, 2, 3))
	assert.True(t, Exhausted(1, 2, 3))
	assert.True(t, Exhausted(0, 2, 2))
	// limit không dương coi như 1
	assert.False(t, Exhausted(0, 0, 2))
	assert.True(t, Exhausted(1, 0, 2))
}
