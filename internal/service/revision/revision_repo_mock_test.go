package revision

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/doccontrol-backend/internal/domain"
)

var _ revisionRepo = &revisionRepoMock{}

type revisionRepoMock struct {
	CreateFunc          func(ctx context.Context, rev domain.DocumentRevision) error
	CurrentApprovedFunc func(ctx context.Context, documentID string) (domain.DocumentRevision, error)
	GetByIDFunc         func(ctx context.Context, id uuid.UUID) (domain.DocumentRevision, error)
	GetByLetterFunc     func(ctx context.Context, documentID string, letter string) (domain.DocumentRevision, error)
	LatestForUpdateFunc func(ctx context.Context, documentID string) (domain.DocumentRevision, error)
	ListBetweenFunc     func(ctx context.Context, documentID string, fromVersion int, toVersion int) ([]domain.DocumentRevision, error)
	ListByDocumentFunc  func(ctx context.Context, documentID string) ([]domain.DocumentRevision, error)
	SupersedeFunc       func(ctx context.Context, id uuid.UUID) error
	UpdateStatusFunc    func(ctx context.Context, id uuid.UUID, change domain.RevisionStatusChange) (domain.DocumentRevision, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			Rev domain.DocumentRevision
		}
		CurrentApproved []struct {
			Ctx        context.Context
			DocumentID string
		}
		GetByID []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		GetByLetter []struct {
			Ctx        context.Context
			DocumentID string
			Letter     string
		}
		LatestForUpdate []struct {
			Ctx        context.Context
			DocumentID string
		}
		ListBetween []struct {
			Ctx         context.Context
			DocumentID  string
			FromVersion int
			ToVersion   int
		}
		ListByDocument []struct {
			Ctx        context.Context
			DocumentID string
		}
		Supersede []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		UpdateStatus []struct {
			Ctx    context.Context
			Id     uuid.UUID
			Change domain.RevisionStatusChange
		}
	}
	lockCreate          sync.RWMutex
	lockCurrentApproved sync.RWMutex
	lockGetByID         sync.RWMutex
	lockGetByLetter     sync.RWMutex
	lockLatestForUpdate sync.RWMutex
	lockListBetween     sync.RWMutex
	lockListByDocument  sync.RWMutex
	lockSupersede       sync.RWMutex
	lockUpdateStatus    sync.RWMutex
}

func (mock *revisionRepoMock) Create(ctx context.Context, rev domain.DocumentRevision) error {
	if mock.CreateFunc == nil {
		panic("revisionRepoMock.CreateFunc: method is nil but revisionRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Rev domain.DocumentRevision
	}{
		Ctx: ctx,
		Rev: rev,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, rev)
}

func (mock *revisionRepoMock) CreateCalls() []struct {
	Ctx context.Context
	Rev domain.DocumentRevision
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *revisionRepoMock) CurrentApproved(ctx context.Context, documentID string) (domain.DocumentRevision, error) {
	if mock.CurrentApprovedFunc == nil {
		panic("revisionRepoMock.CurrentApprovedFunc: method is nil but revisionRepo.CurrentApproved was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		DocumentID string
	}{
		Ctx:        ctx,
		DocumentID: documentID,
	}
	mock.lockCurrentApproved.Lock()
	mock.calls.CurrentApproved = append(mock.calls.CurrentApproved, callInfo)
	mock.lockCurrentApproved.Unlock()
	return mock.CurrentApprovedFunc(ctx, documentID)
}

func (mock *revisionRepoMock) CurrentApprovedCalls() []struct {
	Ctx        context.Context
	DocumentID string
} {
	mock.lockCurrentApproved.RLock()
	calls := mock.calls.CurrentApproved
	mock.lockCurrentApproved.RUnlock()
	return calls
}

func (mock *revisionRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.DocumentRevision, error) {
	if mock.GetByIDFunc == nil {
		panic("revisionRepoMock.GetByIDFunc: method is nil but revisionRepo.GetByID was just called")
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

func (mock *revisionRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *revisionRepoMock) GetByLetter(ctx context.Context, documentID string, letter string) (domain.DocumentRevision, error) {
	if mock.GetByLetterFunc == nil {
		panic("revisionRepoMock.GetByLetterFunc: method is nil but revisionRepo.GetByLetter was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		DocumentID string
		Letter     string
	}{
		Ctx:        ctx,
		DocumentID: documentID,
		Letter:     letter,
	}
	mock.lockGetByLetter.Lock()
	mock.calls.GetByLetter = append(mock.calls.GetByLetter, callInfo)
	mock.lockGetByLetter.Unlock()
	return mock.GetByLetterFunc(ctx, documentID, letter)
}

func (mock *revisionRepoMock) GetByLetterCalls() []struct {
	Ctx        context.Context
	DocumentID string
	Letter     string
} {
	mock.lockGetByLetter.RLock()
	calls := mock.calls.GetByLetter
	mock.lockGetByLetter.RUnlock()
	return calls
}

func (mock *revisionRepoMock) LatestForUpdate(ctx context.Context, documentID string) (domain.DocumentRevision, error) {
	if mock.LatestForUpdateFunc == nil {
		panic("revisionRepoMock.LatestForUpdateFunc: method is nil but revisionRepo.LatestForUpdate was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		DocumentID string
	}{
		Ctx:        ctx,
		DocumentID: documentID,
	}
	mock.lockLatestForUpdate.Lock()
	mock.calls.LatestForUpdate = append(mock.calls.LatestForUpdate, callInfo)
	mock.lockLatestForUpdate.Unlock()
	return mock.LatestForUpdateFunc(ctx, documentID)
}

func (mock *revisionRepoMock) LatestForUpdateCalls() []struct {
	Ctx        context.Context
	DocumentID string
} {
	mock.lockLatestForUpdate.RLock()
	calls := mock.calls.LatestForUpdate
	mock.lockLatestForUpdate.RUnlock()
	return calls
}

func (mock *revisionRepoMock) ListBetween(ctx context.Context, documentID string, fromVersion int, toVersion int) ([]domain.DocumentRevision, error) {
	if mock.ListBetweenFunc == nil {
		panic("revisionRepoMock.ListBetweenFunc: method is nil but revisionRepo.ListBetween was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		DocumentID  string
		FromVersion int
		ToVersion   int
	}{
		Ctx:         ctx,
		DocumentID:  documentID,
		FromVersion: fromVersion,
		ToVersion:   toVersion,
	}
	mock.lockListBetween.Lock()
	mock.calls.ListBetween = append(mock.calls.ListBetween, callInfo)
	mock.lockListBetween.Unlock()
	return mock.ListBetweenFunc(ctx, documentID, fromVersion, toVersion)
}

func (mock *revisionRepoMock) ListBetweenCalls() []struct {
	Ctx         context.Context
	DocumentID  string
	FromVersion int
	ToVersion   int
} {
	mock.lockListBetween.RLock()
	calls := mock.calls.ListBetween
	mock.lockListBetween.RUnlock()
	return calls
}

func (mock *revisionRepoMock) ListByDocument(ctx context.Context, documentID string) ([]domain.DocumentRevision, error) {
	if mock.ListByDocumentFunc == nil {
		panic("revisionRepoMock.ListByDocumentFunc: method is nil but revisionRepo.ListByDocument was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		DocumentID string
	}{
		Ctx:        ctx,
		DocumentID: documentID,
	}
	mock.lockListByDocument.Lock()
	mock.calls.ListByDocument = append(mock.calls.ListByDocument, callInfo)
	mock.lockListByDocument.Unlock()
	return mock.ListByDocumentFunc(ctx, documentID)
}

func (mock *revisionRepoMock) ListByDocumentCalls() []struct {
	Ctx        context.Context
	DocumentID string
} {
	mock.lockListByDocument.RLock()
	calls := mock.calls.ListByDocument
	mock.lockListByDocument.RUnlock()
	return calls
}

func (mock *revisionRepoMock) Supersede(ctx context.Context, id uuid.UUID) error {
	if mock.SupersedeFunc == nil {
		panic("revisionRepoMock.SupersedeFunc: method is nil but revisionRepo.Supersede was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{
		Ctx: ctx,
		Id:  id,
	}
	mock.lockSupersede.Lock()
	mock.calls.Supersede = append(mock.calls.Supersede, callInfo)
	mock.lockSupersede.Unlock()
	return mock.SupersedeFunc(ctx, id)
}

func (mock *revisionRepoMock) SupersedeCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockSupersede.RLock()
	calls := mock.calls.Supersede
	mock.lockSupersede.RUnlock()
	return calls
}

func (mock *revisionRepoMock) UpdateStatus(ctx context.Context, id uuid.UUID, change domain.RevisionStatusChange) (domain.DocumentRevision, error) {
	if mock.UpdateStatusFunc == nil {
		panic("revisionRepoMock.UpdateStatusFunc: method is nil but revisionRepo.UpdateStatus was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Id     uuid.UUID
		Change domain.RevisionStatusChange
	}{
		Ctx:    ctx,
		Id:     id,
		Change: change,
	}
	mock.lockUpdateStatus.Lock()
	mock.calls.UpdateStatus = append(mock.calls.UpdateStatus, callInfo)
	mock.lockUpdateStatus.Unlock()
	return mock.UpdateStatusFunc(ctx, id, change)
}

func (mock *revisionRepoMock) UpdateStatusCalls() []struct {
	Ctx    context.Context
	Id     uuid.UUID
	Change domain.RevisionStatusChange
} {
	mock.lockUpdateStatus.RLock()
	calls := mock.calls.UpdateStatus
	mock.lockUpdateStatus.RUnlock()
	return calls
}
