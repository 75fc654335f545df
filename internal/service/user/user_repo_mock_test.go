package user

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/doccontrol-backend/internal/domain"
)

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	GetByEmailForUpdateFunc func(ctx context.Context, email string) (domain.User, error)
	SetRoleFunc             func(ctx context.Context, id uuid.UUID, role string) error

	calls struct {
		GetByEmailForUpdate []struct {
			Ctx   context.Context
			Email string
		}
		SetRole []struct {
			Ctx  context.Context
			Id   uuid.UUID
			Role string
		}
	}
	lockGetByEmailForUpdate sync.RWMutex
	lockSetRole             sync.RWMutex
}

func (mock *userRepoMock) GetByEmailForUpdate(ctx context.Context, email string) (domain.User, error) {
	if mock.GetByEmailForUpdateFunc == nil {
		panic("userRepoMock.GetByEmailForUpdateFunc: method is nil but userRepo.GetByEmailForUpdate was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Email string
	}{
		Ctx:   ctx,
		Email: email,
	}
	mock.lockGetByEmailForUpdate.Lock()
	mock.calls.GetByEmailForUpdate = append(mock.calls.GetByEmailForUpdate, callInfo)
	mock.lockGetByEmailForUpdate.Unlock()
	return mock.GetByEmailForUpdateFunc(ctx, email)
}

func (mock *userRepoMock) GetByEmailForUpdateCalls() []struct {
	Ctx   context.Context
	Email string
} {
	mock.lockGetByEmailForUpdate.RLock()
	calls := mock.calls.GetByEmailForUpdate
	mock.lockGetByEmailForUpdate.RUnlock()
	return calls
}

func (mock *userRepoMock) SetRole(ctx context.Context, id uuid.UUID, role string) error {
	if mock.SetRoleFunc == nil {
		panic("userRepoMock.SetRoleFunc: method is nil but userRepo.SetRole was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Id   uuid.UUID
		Role string
	}{
		Ctx:  ctx,
		Id:   id,
		Role: role,
	}
	mock.lockSetRole.Lock()
	mock.calls.SetRole = append(mock.calls.SetRole, callInfo)
	mock.lockSetRole.Unlock()
	return mock.SetRoleFunc(ctx, id, role)
}

func (mock *userRepoMock) SetRoleCalls() []struct {
	Ctx  context.Context
	Id   uuid.UUID
	Role string
} {
	mock.lockSetRole.RLock()
	calls := mock.calls.SetRole
	mock.lockSetRole.RUnlock()
	return calls
}
