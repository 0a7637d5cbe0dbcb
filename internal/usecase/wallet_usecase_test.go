package usecase_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"ergasia-marketplace/internal/domain"
	"ergasia-marketplace/internal/usecase"
)

func walletHistory() []domain.Transaction {
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	job := "job1"
	return []domain.Transaction{
		{ID: "t1", Amount: 500, Type: domain.TransactionTopUp, FromID: "u1", CreatedAt: at},
		{ID: "t2", Amount: 200, Type: domain.TransactionTransferToJob, FromID: "u1", JobID: &job, CreatedAt: at},
		{ID: "t3", Amount: 80, Type: domain.TransactionTransferToWorker, FromID: "u2", ToIDs: []string{"u1"}, CreatedAt: at},
		{ID: "t4", Amount: 30, Type: domain.TransactionTransferToWorker, FromID: "u1", ToIDs: []string{"u3"}, CreatedAt: at},
	}
}

func TestWalletUsecase_Summary(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTransactionRepo)
	repo.On("FetchByUser", ctx, "u1").Return(walletHistory(), nil)

	got, err := usecase.NewWalletUsecase(repo).Summary(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 580.0, got.Income)
	assert.Equal(t, 230.0, got.Expenses)
	assert.Equal(t, 350.0, got.Balance)
}

func TestWalletUsecase_Export(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTransactionRepo)
	repo.On("FetchByUser", ctx, "u1").Return(walletHistory(), nil)

	data, filename, err := usecase.NewWalletUsecase(repo).Export(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "transactions_"))
	assert.True(t, strings.HasSuffix(filename, ".xlsx"))

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Transactions", "A1")
	require.NoError(t, err)
	assert.Equal(t, "DATE", header)

	kind, err := f.GetCellValue("Transactions", "B2")
	require.NoError(t, err)
	assert.Equal(t, "TOP_UP", kind)

	direction, err := f.GetCellValue("Transactions", "C4")
	require.NoError(t, err)
	assert.Equal(t, "INCOME", direction)

	balance, err := f.GetCellValue("Transactions", "D9")
	require.NoError(t, err)
	assert.Equal(t, "350", balance)
}
