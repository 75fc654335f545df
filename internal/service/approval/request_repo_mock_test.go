package approval

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/doccontrol-backend/internal/domain"
)

var _ requestRepo = &requestRepoMock{}

type requestRepoMock struct {
	CreateFunc        func(ctx context.Context, req domain.ApprovalRequest) error
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (domain.ApprovalRequest, error)
	ListForActorFunc  func(ctx context.Context, actorID uuid.UUID, limit int) ([]domain.ApprovalRequest, error)
	ListPendingAtFunc func(ctx context.Context, stages []domain.StageRef, limit int) ([]domain.ApprovalRequest, error)
	UpdateStateFunc   func(ctx context.Context, req domain.ApprovalRequest) error

	calls struct {
		Create []struct {
			Ctx context.Context
			Req domain.ApprovalRequest
		}
		GetByID []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		ListForActor []struct {
			Ctx     context.Context
			ActorID uuid.UUID
			Limit   int
		}
		ListPendingAt []struct {
			Ctx    context.Context
			Stages []domain.StageRef
			Limit  int
		}
		UpdateState []struct {
			Ctx context.Context
			Req domain.ApprovalRequest
		}
	}
	lockCreate        sync.RWMutex
	lockGetByID       sync.RWMutex
	lockListForActor  sync.RWMutex
	lockListPendingAt sync.RWMutex
	lockUpdateState   sync.RWMutex
}

func (mock *requestRepoMock) Create(ctx context.Context, req domain.ApprovalRequest) error {
	if mock.CreateFunc == nil {
		panic("requestRepoMock.CreateFunc: method is nil but requestRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Req domain.ApprovalRequest
	}{
		Ctx: ctx,
		Req: req,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, req)
}

func (mock *requestRepoMock) CreateCalls() []struct {
	Ctx context.Context
	Req domain.ApprovalRequest
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *requestRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.ApprovalRequest, error) {
	if mock.GetByIDFunc == nil {
		panic("requestRepoMock.GetByIDFunc: method is nil but requestRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{
		Ctx: ctx,
		Id:  id,
	}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *requestRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *requestRepoMock) ListForActor(ctx context.Context, actorID uuid.UUID, limit int) ([]domain.ApprovalRequest, error) {
	if mock.ListForActorFunc == nil {
		panic("requestRepoMock.ListForActorFunc: method is nil but requestRepo.ListForActor was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		ActorID uuid.UUID
		Limit   int
	}{
		Ctx:     ctx,
		ActorID: actorID,
		Limit:   limit,
	}
	mock.lockListForActor.Lock()
	mock.calls.ListForActor = append(mock.calls.ListForActor, callInfo)
	mock.lockListForActor.Unlock()
	return mock.ListForActorFunc(ctx, actorID, limit)
}

func (mock *requestRepoMock) ListForActorCalls() []struct {
	Ctx     context.Context
	ActorID uuid.UUID
	Limit   int
} {
	mock.lockListForActor.RLock()
	calls := mock.calls.ListForActor
	mock.lockListForActor.RUnlock()
	return calls
}

func (mock *requestRepoMock) ListPendingAt(ctx context.Context, stages []domain.StageRef, limit int) ([]domain.ApprovalRequest, error) {
	if mock.ListPendingAtFunc == nil {
		panic("requestRepoMock.ListPendingAtFunc: method is nil but requestRepo.ListPendingAt was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Stages []domain.StageRef
		Limit  int
	}{
		Ctx:    ctx,
		Stages: stages,
		Limit:  limit,
	}
	mock.lockListPendingAt.Lock()
	mock.calls.ListPendingAt = append(mock.calls.ListPendingAt, callInfo)
	mock.lockListPendingAt.Unlock()
	return mock.ListPendingAtFunc(ctx, stages, limit)
}

func (mock *requestRepoMock) ListPendingAtCalls() []struct {
	Ctx    context.Context
	Stages []domain.StageRef
	Limit  int
} {
	mock.lockListPendingAt.RLock()
	calls := mock.calls.ListPendingAt
	mock.lockListPendingAt.RUnlock()
	return calls
}

func (mock *requestRepoMock) UpdateState(ctx context.Context, req domain.ApprovalRequest) error {
	if mock.UpdateStateFunc == nil {
		panic("requestRepoMock.UpdateStateFunc: method is nil but requestRepo.UpdateState was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Req domain.ApprovalRequest
	}{
		Ctx: ctx,
		Req: req,
	}
	mock.lockUpdateState.Lock()
	mock.calls.UpdateState = append(mock.calls.UpdateState, callInfo)
	mock.lockUpdateState.Unlock()
	return mock.UpdateStateFunc(ctx, req)
}

func (mock *requestRepoMock) UpdateStateCalls() []struct {
	Ctx context.Context
	Req domain.ApprovalRequest
} {
	mock.lockUpdateState.RLock()
	calls := mock.calls.UpdateState
	mock.lockUpdateState.RUnlock()
	return calls
}
