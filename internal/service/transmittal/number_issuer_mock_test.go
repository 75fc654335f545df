package transmittal

import (
	"context"
	"sync"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
)

var _ numberIssuer = &numberIssuerMock{}

type numberIssuerMock struct {
	IssueTransmittalNumberFunc func(ctx context.Context, projectCode *string) (domain.SerialLedgerEntry, error)

	calls struct {
		IssueTransmittalNumber []struct {
			Ctx         context.Context
			ProjectCode *string
		}
	}
	lockIssueTransmittalNumber sync.RWMutex
}

func (mock *numberIssuerMock) IssueTransmittalNumber(ctx context.Context, projectCode *string) (domain.SerialLedgerEntry, error) {
	if mock.IssueTransmittalNumberFunc == nil {
		panic("numberIssuerMock.IssueTransmittalNumberFunc: method is nil but numberIssuer.IssueTransmittalNumber was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		ProjectCode *string
	}{
		Ctx:         ctx,
		ProjectCode: projectCode,
	}
	mock.lockIssueTransmittalNumber.Lock()
	mock.calls.IssueTransmittalNumber = append(mock.calls.IssueTransmittalNumber, callInfo)
	mock.lockIssueTransmittalNumber.Unlock()
	return mock.IssueTransmittalNumberFunc(ctx, projectCode)
}

func (mock *numberIssuerMock) IssueTransmittalNumberCalls() []struct {
	Ctx         context.Context
	ProjectCode *string
} {
	mock.lockIssueTransmittalNumber.RLock()
	calls := mock.calls.IssueTransmittalNumber
	mock.lockIssueTransmittalNumber.RUnlock()
	return calls
}
