package rest

import (
	"sync"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
)

var _ workflowCatalog = &workflowCatalogMock{}

type workflowCatalogMock struct {
	DomainsFunc          func() []string
	GetFunc              func(workflowDomain string) (*domain.WorkflowDefinition, error)
	AuthorizedStagesFunc func(role string) []domain.StageRef

	calls struct {
		Domains []struct{}
		Get []struct {
			WorkflowDomain string
		}
		AuthorizedStages []struct {
			Role string
		}
	}
	lockDomains          sync.RWMutex
	lockGet              sync.RWMutex
	lockAuthorizedStages sync.RWMutex
}

func (mock *workflowCatalogMock) Domains() []string {
	if mock.DomainsFunc == nil {
		panic("workflowCatalogMock.DomainsFunc: method is nil but workflowCatalog.Domains was just called")
	}
	mock.lockDomains.Lock()
	mock.calls.Domains = append(mock.calls.Domains, struct{}{})
	mock.lockDomains.Unlock()
	return mock.DomainsFunc()
}

func (mock *workflowCatalogMock) DomainsCalls() []struct{} {
	mock.lockDomains.RLock()
	calls := mock.calls.Domains
	mock.lockDomains.RUnlock()
	return calls
}

func (mock *workflowCatalogMock) Get(workflowDomain string) (*domain.WorkflowDefinition, error) {
	if mock.GetFunc == nil {
		panic("workflowCatalogMock.GetFunc: method is nil but workflowCatalog.Get was just called")
	}
	callInfo := struct {
		WorkflowDomain string
	}{
		WorkflowDomain: workflowDomain,
	}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(workflowDomain)
}

func (mock *workflowCatalogMock) GetCalls() []struct {
	WorkflowDomain string
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *workflowCatalogMock) AuthorizedStages(role string) []domain.StageRef {
	if mock.AuthorizedStagesFunc == nil {
		panic("workflowCatalogMock.AuthorizedStagesFunc: method is nil but workflowCatalog.AuthorizedStages was just called")
	}
	callInfo := struct {
		Role string
	}{
		Role: role,
	}
	mock.lockAuthorizedStages.Lock()
	mock.calls.AuthorizedStages = append(mock.calls.AuthorizedStages, callInfo)
	mock.lockAuthorizedStages.Unlock()
	return mock.AuthorizedStagesFunc(role)
}

func (mock *workflowCatalogMock) AuthorizedStagesCalls() []struct {
	Role string
} {
	mock.lockAuthorizedStages.RLock()
	calls := mock.calls.AuthorizedStages
	mock.lockAuthorizedStages.RUnlock()
	return calls
}
