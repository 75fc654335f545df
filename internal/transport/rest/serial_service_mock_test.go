package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/doccontrol-backend/internal/domain"
	"github.com/heartmarshall/doccontrol-backend/internal/service/serial"
)

var _ serialService = &serialServiceMock{}

type serialServiceMock struct {
	IssueFunc   func(ctx context.Context, input serial.IssueInput) (domain.SerialLedgerEntry, error)
	LedgerFunc  func(ctx context.Context, category string, limit int) ([]domain.SerialLedgerEntry, error)
	ReserveFunc func(ctx context.Context, input serial.ReserveInput) (domain.SerialReservation, error)
	ConsumeFunc func(ctx context.Context, reservationID uuid.UUID, holderID uuid.UUID) (domain.SerialReservation, error)

	calls struct {
		Issue []struct {
			Ctx   context.Context
			Input serial.IssueInput
		}
		Ledger []struct {
			Ctx      context.Context
			Category string
			Limit    int
		}
		Reserve []struct {
			Ctx   context.Context
			Input serial.ReserveInput
		}
		Consume []struct {
			Ctx           context.Context
			ReservationID uuid.UUID
			HolderID      uuid.UUID
		}
	}
	lockIssue   sync.RWMutex
	lockLedger  sync.RWMutex
	lockReserve sync.RWMutex
	lockConsume sync.RWMutex
}

func (mock *serialServiceMock) Issue(ctx context.Context, input serial.IssueInput) (domain.SerialLedgerEntry, error) {
	if mock.IssueFunc == nil {
		panic("serialServiceMock.IssueFunc: method is nil but serialService.Issue was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input serial.IssueInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockIssue.Lock()
	mock.calls.Issue = append(mock.calls.Issue, callInfo)
	mock.lockIssue.Unlock()
	return mock.IssueFunc(ctx, input)
}

func (mock *serialServiceMock) IssueCalls() []struct {
	Ctx   context.Context
	Input serial.IssueInput
} {
	mock.lockIssue.RLock()
	calls := mock.calls.Issue
	mock.lockIssue.RUnlock()
	return calls
}

func (mock *serialServiceMock) Ledger(ctx context.Context, category string, limit int) ([]domain.SerialLedgerEntry, error) {
	if mock.LedgerFunc == nil {
		panic("serialServiceMock.LedgerFunc: method is nil but serialService.Ledger was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Category string
		Limit    int
	}{
		Ctx:      ctx,
		Category: category,
		Limit:    limit,
	}
	mock.lockLedger.Lock()
	mock.calls.Ledger = append(mock.calls.Ledger, callInfo)
	mock.lockLedger.Unlock()
	return mock.LedgerFunc(ctx, category, limit)
}

func (mock *serialServiceMock) LedgerCalls() []struct {
	Ctx      context.Context
	Category string
	Limit    int
} {
	mock.lockLedger.RLock()
	calls := mock.calls.Ledger
	mock.lockLedger.RUnlock()
	return calls
}

func (mock *serialServiceMock) Reserve(ctx context.Context, input serial.ReserveInput) (domain.SerialReservation, error) {
	if mock.ReserveFunc == nil {
		panic("serialServiceMock.ReserveFunc: method is nil but serialService.Reserve was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input serial.ReserveInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockReserve.Lock()
	mock.calls.Reserve = append(mock.calls.Reserve, callInfo)
	mock.lockReserve.Unlock()
	return mock.ReserveFunc(ctx, input)
}

func (mock *serialServiceMock) ReserveCalls() []struct {
	Ctx   context.Context
	Input serial.ReserveInput
} {
	mock.lockReserve.RLock()
	calls := mock.calls.Reserve
	mock.lockReserve.RUnlock()
	return calls
}

func (mock *serialServiceMock) Consume(ctx context.Context, reservationID uuid.UUID, holderID uuid.UUID) (domain.SerialReservation, error) {
	if mock.ConsumeFunc == nil {
		panic("serialServiceMock.ConsumeFunc: method is nil but serialService.Consume was just called")
	}
	callInfo := struct {
		Ctx           context.Context
		ReservationID uuid.UUID
		HolderID      uuid.UUID
	}{
		Ctx:           ctx,
		ReservationID: reservationID,
		HolderID:      holderID,
	}
	mock.lockConsume.Lock()
	mock.calls.Consume = append(mock.calls.Consume, callInfo)
	mock.lockConsume.Unlock()
	return mock.ConsumeFunc(ctx, reservationID, holderID)
}

func (mock *serialServiceMock) ConsumeCalls() []struct {
	Ctx           context.Context
	ReservationID uuid.UUID
	HolderID      uuid.UUID
} {
	mock.lockConsume.RLock()
	calls := mock.calls.Consume
	mock.lockConsume.RUnlock()
	return calls
}
