package services

import (
	"sync"
	"testing"

	"restaurant_backend/internal/models"
	"restaurant_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type recordingNotificationRepo struct {
	repositories.NotificationRepository

	mu      sync.Mutex
	batches [][]*models.Notification
}

func (r *recordingNotificationRepo) CreateBulk(_ *gorm.DB, notifications []*models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, notifications)
	return nil
}

type recordingPusher struct {
	mu  sync.Mutex
	ids []string
}

func (p *recordingPusher) SendToUser(userID string, _ any) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ids = append(p.ids, userID)
	return 1
}

func TestNotificationEmitter_SkipsEmptyRecipients(t *testing.T) {
	repo := &recordingNotificationRepo{}
	emitter := NewNotificationEmitter(nil, repo, nil)

	emitter.Emit([]string{"", ""}, models.NotificationNewReview, "New review", "", nil)
	emitter.Emit(nil, models.NotificationNewReview, "New review", "", nil)
	emitter.Wait()

	assert.Empty(t, repo.batches)
}

func TestNotificationEmitter_DeduplicatesAndPushes(t *testing.T) {
	repo := &recordingNotificationRepo{}
	pusher := &recordingPusher{}
	emitter := NewNotificationEmitter(nil, repo, pusher)

	emitter.Emit([]string{"u1", "u1", "", "u2"}, models.NotificationNewReview, "New review", "5 stars", map[string]string{"rating": "5"})
	emitter.Wait()

	if assert.Len(t, repo.batches, 1) {
		assert.Len(t, repo.batches[0], 2)
		assert.JSONEq(t, `{"rating":"5"}`, string(repo.batches[0][0].Data))
	}
	assert.ElementsMatch(t, []string{"u1", "u2"}, pusher.ids)
}
