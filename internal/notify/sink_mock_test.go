package notify

import (
	"context"
	"sync"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
)

var _ Sink = &SinkMock{}

type SinkMock struct {
	SendFunc func(ctx context.Context, n domain.Notification) error

	calls struct {
		Send []struct {
			Ctx context.Context
			N   domain.Notification
		}
	}
	lockSend sync.RWMutex
}

func (mock *SinkMock) Send(ctx context.Context, n domain.Notification) error {
	if mock.SendFunc == nil {
		panic("SinkMock.SendFunc: method is nil but Sink.Send was just called")
	}
	callInfo := struct {
		Ctx context.Context
		N   domain.Notification
	}{Ctx: ctx, N: n}
	mock.lockSend.Lock()
	mock.calls.Send = append(mock.calls.Send, callInfo)
	mock.lockSend.Unlock()
	return mock.SendFunc(ctx, n)
}

func (mock *SinkMock) SendCalls() []struct {
	Ctx context.Context
	N   domain.Notification
} {
	mock.lockSend.RLock()
	calls := mock.calls.Send
	mock.lockSend.RUnlock()
	return calls
}
