package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/doccontrol-backend/internal/domain"
	"github.com/heartmarshall/doccontrol-backend/internal/service/revision"
)

var _ revisionService = &revisionServiceMock{}

type revisionServiceMock struct {
	CreateRevisionFunc     func(ctx context.Context, input revision.CreateInput) (domain.DocumentRevision, error)
	GetCurrentRevisionFunc func(ctx context.Context, documentID string) (domain.DocumentRevision, error)
	GetRevisionFunc        func(ctx context.Context, id uuid.UUID) (domain.DocumentRevision, error)
	ListRevisionsFunc      func(ctx context.Context, documentID string) ([]domain.DocumentRevision, error)
	CompareRevisionsFunc   func(ctx context.Context, input revision.CompareInput) (domain.RevisionComparison, error)
	SubmitForReviewFunc    func(ctx context.Context, revisionID uuid.UUID) (domain.DocumentRevision, error)
	ApproveRevisionFunc    func(ctx context.Context, revisionID uuid.UUID) (domain.DocumentRevision, error)

	calls struct {
		CreateRevision []struct {
			Ctx   context.Context
			Input revision.CreateInput
		}
		GetCurrentRevision []struct {
			Ctx        context.Context
			DocumentID string
		}
		GetRevision []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		ListRevisions []struct {
			Ctx        context.Context
			DocumentID string
		}
		CompareRevisions []struct {
			Ctx   context.Context
			Input revision.CompareInput
		}
		SubmitForReview []struct {
			Ctx        context.Context
			RevisionID uuid.UUID
		}
		ApproveRevision []struct {
			Ctx        context.Context
			RevisionID uuid.UUID
		}
	}
	lockCreateRevision     sync.RWMutex
	lockGetCurrentRevision sync.RWMutex
	lockGetRevision        sync.RWMutex
	lockListRevisions      sync.RWMutex
	lockCompareRevisions   sync.RWMutex
	lockSubmitForReview    sync.RWMutex
	lockApproveRevision    sync.RWMutex
}

func (mock *revisionServiceMock) CreateRevision(ctx context.Context, input revision.CreateInput) (domain.DocumentRevision, error) {
	if mock.CreateRevisionFunc == nil {
		panic("revisionServiceMock.CreateRevisionFunc: method is nil but revisionService.CreateRevision was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input revision.CreateInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockCreateRevision.Lock()
	mock.calls.CreateRevision = append(mock.calls.CreateRevision, callInfo)
	mock.lockCreateRevision.Unlock()
	return mock.CreateRevisionFunc(ctx, input)
}

func (mock *revisionServiceMock) CreateRevisionCalls() []struct {
	Ctx   context.Context
	Input revision.CreateInput
} {
	mock.lockCreateRevision.RLock()
	calls := mock.calls.CreateRevision
	mock.lockCreateRevision.RUnlock()
	return calls
}

func (mock *revisionServiceMock) GetCurrentRevision(ctx context.Context, documentID string) (domain.DocumentRevision, error) {
	if mock.GetCurrentRevisionFunc == nil {
		panic("revisionServiceMock.GetCurrentRevisionFunc: method is nil but revisionService.GetCurrentRevision was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		DocumentID string
	}{
		Ctx:        ctx,
		DocumentID: documentID,
	}
	mock.lockGetCurrentRevision.Lock()
	mock.calls.GetCurrentRevision = append(mock.calls.GetCurrentRevision, callInfo)
	mock.lockGetCurrentRevision.Unlock()
	return mock.GetCurrentRevisionFunc(ctx, documentID)
}

func (mock *revisionServiceMock) GetCurrentRevisionCalls() []struct {
	Ctx        context.Context
	DocumentID string
} {
	mock.lockGetCurrentRevision.RLock()
	calls := mock.calls.GetCurrentRevision
	mock.lockGetCurrentRevision.RUnlock()
	return calls
}

func (mock *revisionServiceMock) GetRevision(ctx context.Context, id uuid.UUID) (domain.DocumentRevision, error) {
	if mock.GetRevisionFunc == nil {
		panic("revisionServiceMock.GetRevisionFunc: method is nil but revisionService.GetRevision was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{
		Ctx: ctx,
		Id:  id,
	}
	mock.lockGetRevision.Lock()
	mock.calls.GetRevision = append(mock.calls.GetRevision, callInfo)
	mock.lockGetRevision.Unlock()
	return mock.GetRevisionFunc(ctx, id)
}

func (mock *revisionServiceMock) GetRevisionCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGetRevision.RLock()
	calls := mock.calls.GetRevision
	mock.lockGetRevision.RUnlock()
	return calls
}

func (mock *revisionServiceMock) ListRevisions(ctx context.Context, documentID string) ([]domain.DocumentRevision, error) {
	if mock.ListRevisionsFunc == nil {
		panic("revisionServiceMock.ListRevisionsFunc: method is nil but revisionService.ListRevisions was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		DocumentID string
	}{
		Ctx:        ctx,
		DocumentID: documentID,
	}
	mock.lockListRevisions.Lock()
	mock.calls.ListRevisions = append(mock.calls.ListRevisions, callInfo)
	mock.lockListRevisions.Unlock()
	return mock.ListRevisionsFunc(ctx, documentID)
}

func (mock *revisionServiceMock) ListRevisionsCalls() []struct {
	Ctx        context.Context
	DocumentID string
} {
	mock.lockListRevisions.RLock()
	calls := mock.calls.ListRevisions
	mock.lockListRevisions.RUnlock()
	return calls
}

func (mock *revisionServiceMock) CompareRevisions(ctx context.Context, input revision.CompareInput) (domain.RevisionComparison, error) {
	if mock.CompareRevisionsFunc == nil {
		panic("revisionServiceMock.CompareRevisionsFunc: method is nil but revisionService.CompareRevisions was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input revision.CompareInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockCompareRevisions.Lock()
	mock.calls.CompareRevisions = append(mock.calls.CompareRevisions, callInfo)
	mock.lockCompareRevisions.Unlock()
	return mock.CompareRevisionsFunc(ctx, input)
}

func (mock *revisionServiceMock) CompareRevisionsCalls() []struct {
	Ctx   context.Context
	Input revision.CompareInput
} {
	mock.lockCompareRevisions.RLock()
	calls := mock.calls.CompareRevisions
	mock.lockCompareRevisions.RUnlock()
	return calls
}

func (mock *revisionServiceMock) SubmitForReview(ctx context.Context, revisionID uuid.UUID) (domain.DocumentRevision, error) {
	if mock.SubmitForReviewFunc == nil {
		panic("revisionServiceMock.SubmitForReviewFunc: method is nil but revisionService.SubmitForReview was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		RevisionID uuid.UUID
	}{
		Ctx:        ctx,
		RevisionID: revisionID,
	}
	mock.lockSubmitForReview.Lock()
	mock.calls.SubmitForReview = append(mock.calls.SubmitForReview, callInfo)
	mock.lockSubmitForReview.Unlock()
	return mock.SubmitForReviewFunc(ctx, revisionID)
}

func (mock *revisionServiceMock) SubmitForReviewCalls() []struct {
	Ctx        context.Context
	RevisionID uuid.UUID
} {
	mock.lockSubmitForReview.RLock()
	calls := mock.calls.SubmitForReview
	mock.lockSubmitForReview.RUnlock()
	return calls
}

func (mock *revisionServiceMock) ApproveRevision(ctx context.Context, revisionID uuid.UUID) (domain.DocumentRevision, error) {
	if mock.ApproveRevisionFunc == nil {
		panic("revisionServiceMock.ApproveRevisionFunc: method is nil but revisionService.ApproveRevision was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		RevisionID uuid.UUID
	}{
		Ctx:        ctx,
		RevisionID: revisionID,
	}
	mock.lockApproveRevision.Lock()
	mock.calls.ApproveRevision = append(mock.calls.ApproveRevision, callInfo)
	mock.lockApproveRevision.Unlock()
	return mock.ApproveRevisionFunc(ctx, revisionID)
}

func (mock *revisionServiceMock) ApproveRevisionCalls() []struct {
	Ctx        context.Context
	RevisionID uuid.UUID
} {
	mock.lockApproveRevision.RLock()
	calls := mock.calls.ApproveRevision
	mock.lockApproveRevision.RUnlock()
	return calls
}
