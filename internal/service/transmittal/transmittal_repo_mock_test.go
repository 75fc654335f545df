package transmittal

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/doccontrol-backend/internal/domain"
)

var _ transmittalRepo = &transmittalRepoMock{}

type transmittalRepoMock struct {
	AppendHistoryFunc  func(ctx context.Context, e domain.TransmittalHistoryEntry) error
	CreateFunc         func(ctx context.Context, t domain.Transmittal) error
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (domain.Transmittal, error)
	HistoryFunc        func(ctx context.Context, id uuid.UUID) ([]domain.TransmittalHistoryEntry, error)
	ListByProjectFunc  func(ctx context.Context, projectID uuid.UUID) ([]domain.Transmittal, error)
	ListPendingForFunc func(ctx context.Context, recipientID uuid.UUID) ([]domain.Transmittal, error)
	UpdateStatusFunc   func(ctx context.Context, id uuid.UUID, action string, change domain.TransmittalStatusChange) (domain.Transmittal, error)

	calls struct {
		AppendHistory []struct {
			Ctx context.Context
			E   domain.TransmittalHistoryEntry
		}
		Create []struct {
			Ctx context.Context
			T   domain.Transmittal
		}
		GetByID []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		History []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		ListByProject []struct {
			Ctx       context.Context
			ProjectID uuid.UUID
		}
		ListPendingFor []struct {
			Ctx         context.Context
			RecipientID uuid.UUID
		}
		UpdateStatus []struct {
			Ctx    context.Context
			Id     uuid.UUID
			Action string
			Change domain.TransmittalStatusChange
		}
	}
	lockAppendHistory  sync.RWMutex
	lockCreate         sync.RWMutex
	lockGetByID        sync.RWMutex
	lockHistory        sync.RWMutex
	lockListByProject  sync.RWMutex
	lockListPendingFor sync.RWMutex
	lockUpdateStatus   sync.RWMutex
}

func (mock *transmittalRepoMock) AppendHistory(ctx context.Context, e domain.TransmittalHistoryEntry) error {
	if mock.AppendHistoryFunc == nil {
		panic("transmittalRepoMock.AppendHistoryFunc: method is nil but transmittalRepo.AppendHistory was just called")
	}
	callInfo := struct {
		Ctx context.Context
		E   domain.TransmittalHistoryEntry
	}{
		Ctx: ctx,
		E:   e,
	}
	mock.lockAppendHistory.Lock()
	mock.calls.AppendHistory = append(mock.calls.AppendHistory, callInfo)
	mock.lockAppendHistory.Unlock()
	return mock.AppendHistoryFunc(ctx, e)
}

func (mock *transmittalRepoMock) AppendHistoryCalls() []struct {
	Ctx context.Context
	E   domain.TransmittalHistoryEntry
} {
	mock.lockAppendHistory.RLock()
	calls := mock.calls.AppendHistory
	mock.lockAppendHistory.RUnlock()
	return calls
}

func (mock *transmittalRepoMock) Create(ctx context.Context, t domain.Transmittal) error {
	if mock.CreateFunc == nil {
		panic("transmittalRepoMock.CreateFunc: method is nil but transmittalRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		T   domain.Transmittal
	}{
		Ctx: ctx,
		T:   t,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, t)
}

func (mock *transmittalRepoMock) CreateCalls() []struct {
	Ctx context.Context
	T   domain.Transmittal
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *transmittalRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.Transmittal, error) {
	if mock.GetByIDFunc == nil {
		panic("transmittalRepoMock.GetByIDFunc: method is nil but transmittalRepo.GetByID was just called")
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

func (mock *transmittalRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *transmittalRepoMock) History(ctx context.Context, id uuid.UUID) ([]domain.TransmittalHistoryEntry, error) {
	if mock.HistoryFunc == nil {
		panic("transmittalRepoMock.HistoryFunc: method is nil but transmittalRepo.History was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{
		Ctx: ctx,
		Id:  id,
	}
	mock.lockHistory.Lock()
	mock.calls.History = append(mock.calls.History, callInfo)
	mock.lockHistory.Unlock()
	return mock.HistoryFunc(ctx, id)
}

func (mock *transmittalRepoMock) HistoryCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockHistory.RLock()
	calls := mock.calls.History
	mock.lockHistory.RUnlock()
	return calls
}

func (mock *transmittalRepoMock) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Transmittal, error) {
	if mock.ListByProjectFunc == nil {
		panic("transmittalRepoMock.ListByProjectFunc: method is nil but transmittalRepo.ListByProject was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		ProjectID uuid.UUID
	}{
		Ctx:       ctx,
		ProjectID: projectID,
	}
	mock.lockListByProject.Lock()
	mock.calls.ListByProject = append(mock.calls.ListByProject, callInfo)
	mock.lockListByProject.Unlock()
	return mock.ListByProjectFunc(ctx, projectID)
}

func (mock *transmittalRepoMock) ListByProjectCalls() []struct {
	Ctx       context.Context
	ProjectID uuid.UUID
} {
	mock.lockListByProject.RLock()
	calls := mock.calls.ListByProject
	mock.lockListByProject.RUnlock()
	return calls
}

func (mock *transmittalRepoMock) ListPendingFor(ctx context.Context, recipientID uuid.UUID) ([]domain.Transmittal, error) {
	if mock.ListPendingForFunc == nil {
		panic("transmittalRepoMock.ListPendingForFunc: method is nil but transmittalRepo.ListPendingFor was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		RecipientID uuid.UUID
	}{
		Ctx:         ctx,
		RecipientID: recipientID,
	}
	mock.lockListPendingFor.Lock()
	mock.calls.ListPendingFor = append(mock.calls.ListPendingFor, callInfo)
	mock.lockListPendingFor.Unlock()
	return mock.ListPendingForFunc(ctx, recipientID)
}

func (mock *transmittalRepoMock) ListPendingForCalls() []struct {
	Ctx         context.Context
	RecipientID uuid.UUID
} {
	mock.lockListPendingFor.RLock()
	calls := mock.calls.ListPendingFor
	mock.lockListPendingFor.RUnlock()
	return calls
}

func (mock *transmittalRepoMock) UpdateStatus(ctx context.Context, id uuid.UUID, action string, change domain.TransmittalStatusChange) (domain.Transmittal, error) {
	if mock.UpdateStatusFunc == nil {
		panic("transmittalRepoMock.UpdateStatusFunc: method is nil but transmittalRepo.UpdateStatus was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Id     uuid.UUID
		Action string
		Change domain.TransmittalStatusChange
	}{
		Ctx:    ctx,
		Id:     id,
		Action: action,
		Change: change,
	}
	mock.lockUpdateStatus.Lock()
	mock.calls.UpdateStatus = append(mock.calls.UpdateStatus, callInfo)
	mock.lockUpdateStatus.Unlock()
	return mock.UpdateStatusFunc(ctx, id, action, change)
}

func (mock *transmittalRepoMock) UpdateStatusCalls() []struct {
	Ctx    context.Context
	Id     uuid.UUID
	Action string
	Change domain.TransmittalStatusChange
} {
	mock.lockUpdateStatus.RLock()
	calls := mock.calls.UpdateStatus
	mock.lockUpdateStatus.RUnlock()
	return calls
}
