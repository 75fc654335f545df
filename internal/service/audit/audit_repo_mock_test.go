package audit

import (
	"context"
	"sync"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
)

var _ auditRepo = &auditRepoMock{}

type auditRepoMock struct {
	QueryFunc func(ctx context.Context, f domain.AuditFilter) ([]domain.AuditLogEntry, error)

	calls struct {
		Query []struct {
			Ctx context.Context
			F   domain.AuditFilter
		}
	}
	lockQuery sync.RWMutex
}

func (mock *auditRepoMock) Query(ctx context.Context, f domain.AuditFilter) ([]domain.AuditLogEntry, error) {
	if mock.QueryFunc == nil {
		panic("auditRepoMock.QueryFunc: method is nil but auditRepo.Query was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.AuditFilter
	}{
		Ctx: ctx,
		F:   f,
	}
	mock.lockQuery.Lock()
	mock.calls.Query = append(mock.calls.Query, callInfo)
	mock.lockQuery.Unlock()
	return mock.QueryFunc(ctx, f)
}

func (mock *auditRepoMock) QueryCalls() []struct {
	Ctx context.Context
	F   domain.AuditFilter
} {
	mock.lockQuery.RLock()
	calls := mock.calls.Query
	mock.lockQuery.RUnlock()
	return calls
}
