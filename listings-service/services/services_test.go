package services

import (
	"sync"
	"testing"

	"gorm.io/gorm"

	"github.com/inmohub/listings/shared/testutil"
)

type recordingNotifier struct {
	mu      sync.Mutex
	notices []ReviewNotice
}

func (r *recordingNotifier) ListingReviewed(notice ReviewNotice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, notice)
}

func (r *recordingNotifier) all() []ReviewNotice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ReviewNotice(nil), r.notices...)
}

func newTestServices(t *testing.T) (*gorm.DB, *ServiceManager, *recordingNotifier) {
	t.Helper()
	database := testutil.NewDB(t)
	notifier := &recordingNotifier{}
	sm := NewServiceManager(database, Options{Notifier: notifier})
	return database, sm, notifier
}
