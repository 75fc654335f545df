package approval

import (
	"context"
	"sync"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
)

var _ userDirectory = &userDirectoryMock{}

type userDirectoryMock struct {
	ListByRolesFunc func(ctx context.Context, roles []string) ([]domain.User, error)

	calls struct {
		ListByRoles []struct {
			Ctx   context.Context
			Roles []string
		}
	}
	lockListByRoles sync.RWMutex
}

func (mock *userDirectoryMock) ListByRoles(ctx context.Context, roles []string) ([]domain.User, error) {
	if mock.ListByRolesFunc == nil {
		panic("userDirectoryMock.ListByRolesFunc: method is nil but userDirectory.ListByRoles was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Roles []string
	}{
		Ctx:   ctx,
		Roles: roles,
	}
	mock.lockListByRoles.Lock()
	mock.calls.ListByRoles = append(mock.calls.ListByRoles, callInfo)
	mock.lockListByRoles.Unlock()
	return mock.ListByRolesFunc(ctx, roles)
}

func (mock *userDirectoryMock) ListByRolesCalls() []struct {
	Ctx   context.Context
	Roles []string
} {
	mock.lockListByRoles.RLock()
	calls := mock.calls.ListByRoles
	mock.lockListByRoles.RUnlock()
	return calls
}
