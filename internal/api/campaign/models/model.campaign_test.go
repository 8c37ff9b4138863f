// Package models - Test bảng chuyển trạng thái campaign.
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := [][2]string{
		{StatusDraft, StatusScheduled},
		{StatusDraft, StatusRunning},
		{StatusScheduled, StatusRunning},
		{StatusScheduled, StatusPaused},
		{StatusRunning, StatusCompleted},
		{StatusRunning, StatusScheduled},
		{StatusRunning, StatusFailed},
		{StatusRunning, StatusPaused},
		{StatusPaused, StatusScheduled},
		{StatusCompleted, StatusRunning}, // chạy lại campaign đã hoàn thành
		{StatusFailed, StatusScheduled},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransition(tc[0], tc[1]), "%s -> %s phải hợp lệ", tc[0], tc[1])
	}

	denied := [][2]string{
		{StatusDraft, StatusCompleted},
		{StatusDraft, StatusPaused},
		{StatusCompleted, StatusDraft},
		{StatusCompleted, StatusCompleted},
		{StatusPaused, StatusRunning},
		{StatusFailed, StatusRunning},
		{StatusScheduled, StatusCompleted},
	}
	for _, tc := range denied {
		assert.False(t, CanTransition(tc[0], tc[1]), "%s -> %s phải bị chặn", tc[0], tc[1])
	}

	assert.False(t, CanTransition("unknown", StatusScheduled))
}
