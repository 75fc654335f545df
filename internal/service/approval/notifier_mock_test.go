package approval

import (
	"context"
	"sync"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
)

var _ notifier = &notifierMock{}

type notifierMock struct {
	NotifyFunc func(ctx context.Context, notes ...domain.Notification)

	calls struct {
		Notify []struct {
			Ctx   context.Context
			Notes []domain.Notification
		}
	}
	lockNotify sync.RWMutex
}

func (mock *notifierMock) Notify(ctx context.Context, notes ...domain.Notification) {
	if mock.NotifyFunc == nil {
		panic("notifierMock.NotifyFunc: method is nil but notifier.Notify was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Notes []domain.Notification
	}{
		Ctx:   ctx,
		Notes: notes,
	}
	mock.lockNotify.Lock()
	mock.calls.Notify = append(mock.calls.Notify, callInfo)
	mock.lockNotify.Unlock()
	mock.NotifyFunc(ctx, notes...)
}

func (mock *notifierMock) NotifyCalls() []struct {
	Ctx   context.Context
	Notes []domain.Notification
} {
	mock.lockNotify.RLock()
	calls := mock.calls.Notify
	mock.lockNotify.RUnlock()
	return calls
}
