package redis

import (
	"context"
	"sync"

	goredis "github.com/redis/go-redis/v9"
)

var _ publisher = &publisherMock{}

type publisherMock struct {
	PublishFunc func(ctx context.Context, channel string, message any) *goredis.IntCmd

	calls struct {
		Publish []struct {
			Ctx     context.Context
			Channel string
			Message any
		}
	}
	lockPublish sync.RWMutex
}

func (mock *publisherMock) Publish(ctx context.Context, channel string, message any) *goredis.IntCmd {
	if mock.PublishFunc == nil {
		panic("publisherMock.PublishFunc: method is nil but publisher.Publish was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Channel string
		Message any
	}{
		Ctx:     ctx,
		Channel: channel,
		Message: message,
	}
	mock.lockPublish.Lock()
	mock.calls.Publish = append(mock.calls.Publish, callInfo)
	mock.lockPublish.Unlock()
	return mock.PublishFunc(ctx, channel, message)
}

func (mock *publisherMock) PublishCalls() []struct {
	Ctx     context.Context
	Channel string
	Message any
} {
	mock.lockPublish.RLock()
	calls := mock.calls.Publish
	mock.lockPublish.RUnlock()
	return calls
}
