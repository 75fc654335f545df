package transmittal

import (
	"context"
	"sync"
)

var _ coverArchive = &coverArchiveMock{}

type coverArchiveMock struct {
	PutFunc func(ctx context.Context, key string, data []byte) error

	calls struct {
		Put []struct {
			Ctx  context.Context
			Key  string
			Data []byte
		}
	}
	lockPut sync.RWMutex
}

func (mock *coverArchiveMock) Put(ctx context.Context, key string, data []byte) error {
	if mock.PutFunc == nil {
		panic("coverArchiveMock.PutFunc: method is nil but coverArchive.Put was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Key  string
		Data []byte
	}{
		Ctx:  ctx,
		Key:  key,
		Data: data,
	}
	mock.lockPut.Lock()
	mock.calls.Put = append(mock.calls.Put, callInfo)
	mock.lockPut.Unlock()
	return mock.PutFunc(ctx, key, data)
}

func (mock *coverArchiveMock) PutCalls() []struct {
	Ctx  context.Context
	Key  string
	Data []byte
} {
	mock.lockPut.RLock()
	calls := mock.calls.Put
	mock.lockPut.RUnlock()
	return calls
}
