package search

import (
	"context"
	"iter"
	"sync"

	"github.com/heartmarshall/myenglish-phonetics/internal/domain"
)

var _ entrySource = &entrySourceMock{}

type entrySourceMock struct {
	EntriesFunc func(ctx context.Context) iter.Seq2[domain.Entry, error]

	calls struct {
		Entries []struct {
			Ctx context.Context
		}
	}
	lockEntries sync.RWMutex
}

func (mock *entrySourceMock) Entries(ctx context.Context) iter.Seq2[domain.Entry, error] {
	if mock.EntriesFunc == nil {
		panic("entrySourceMock.EntriesFunc: method is nil but entrySource.Entries was just called")
	}
	callInfo := struct{ Ctx context.Context }{Ctx: ctx}
	mock.lockEntries.Lock()
	mock.calls.Entries = append(mock.calls.Entries, callInfo)
	mock.lockEntries.Unlock()
	return mock.EntriesFunc(ctx)
}

func (mock *entrySourceMock) EntriesCalls() []struct {
	Ctx context.Context
} {
	mock.lockEntries.RLock()
	calls := mock.calls.Entries
	mock.lockEntries.RUnlock()
	return calls
}
