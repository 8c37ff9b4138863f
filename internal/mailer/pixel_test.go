// Package mailer - Test pixel tracking.
package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackingGIF(t *testing.T) {
	assert.Len(t, TrackingGIF, 35)
	// Header GIF89a và byte kết thúc
	assert.Equal(t, []byte("GIF89a"), TrackingGIF[:6])
	assert.Equal(t, byte(0x3b), TrackingGIF[len(TrackingGIF)-1])
}

func TestTrackingPixelTag(t *testing.T) {
	t.Run("Email lowercase và escape trong query", func(t *testing.T) {
		tag := TrackingPixelTag("https://mail.example.com", "pixel-1", "User+A@Example.com")
		assert.Contains(t, tag, `src="https://mail.example.com/api/v1/track/pixel-1?email=user%2Ba%40example.com"`)
		assert.Contains(t, tag, `style="display:none;"`)
	})

	t.Run("Không có pixel id dùng none", func(t *testing.T) {
		tag := TrackingPixelTag("https://mail.example.com/", "", "a@example.com")
		assert.Contains(t, tag, "/api/v1/track/none?email=a%40example.com")
	})
}
