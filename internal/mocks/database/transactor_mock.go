package database

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactorMock 直接執行 fn，tx 為 nil；搭配 repository mock 使用
type TransactorMock struct {
	Calls int
	// Err 不為 nil 時不執行 fn，模擬 begin/commit 失敗
	Err error
}

func NewTransactorMock() *TransactorMock {
	return &TransactorMock{}
}

func (m *TransactorMock) WithinTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	m.Calls++
	if m.Err != nil {
		return m.Err
	}
	return fn(nil)
}
