package transmittal

import (
	"context"
	"sync"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
)

var _ coverRenderer = &coverRendererMock{}

type coverRendererMock struct {
	RenderFunc func(ctx context.Context, t domain.Transmittal) ([]byte, error)

	calls struct {
		Render []struct {
			Ctx context.Context
			T   domain.Transmittal
		}
	}
	lockRender sync.RWMutex
}

func (mock *coverRendererMock) Render(ctx context.Context, t domain.Transmittal) ([]byte, error) {
	if mock.RenderFunc == nil {
		panic("coverRendererMock.RenderFunc: method is nil but coverRenderer.Render was just called")
	}
	callInfo := struct {
		Ctx context.Context
		T   domain.Transmittal
	}{
		Ctx: ctx,
		T:   t,
	}
	mock.lockRender.Lock()
	mock.calls.Render = append(mock.calls.Render, callInfo)
	mock.lockRender.Unlock()
	return mock.RenderFunc(ctx, t)
}

func (mock *coverRendererMock) RenderCalls() []struct {
	Ctx context.Context
	T   domain.Transmittal
} {
	mock.lockRender.RLock()
	calls := mock.calls.Render
	mock.lockRender.RUnlock()
	return calls
}
