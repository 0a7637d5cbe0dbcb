package usecase

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"ergasia-marketplace/internal/domain"
	"ergasia-marketplace/pkg/apperror"
)

type walletUsecase struct {
	txRepo domain.TransactionRepository
	now    func() time.Time
}

func NewWalletUsecase(txRepo domain.TransactionRepository) domain.WalletUsecase {
	return &walletUsecase{txRepo: txRepo, now: time.Now}
}

func (u *walletUsecase) History(ctx context.Context, userID string) ([]domain.Transaction, error) {
	txs, err := u.txRepo.FetchByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return txs, nil
}

// Summary counts top-ups and anything sent by someone else as income, and
// every other transaction as an expense.
func (u *walletUsecase) Summary(ctx context.Context, userID string) (*domain.BalanceSummary, error) {
	txs, err := u.History(ctx, userID)
	if err != nil {
		return nil, err
	}
	return summarize(userID, txs), nil
}

func summarize(userID string, txs []domain.Transaction) *domain.BalanceSummary {
	var s domain.BalanceSummary
	for _, tx := range txs {
		if isIncome(userID, tx) {
			s.Income += tx.Amount
		} else {
			s.Expenses += tx.Amount
		}
	}
	s.Balance = s.Income - s.Expenses
	return &s
}

func isIncome(userID string, tx domain.Transaction) bool {
	return tx.Type == domain.TransactionTopUp || tx.FromID != userID
}

// Export renders the user's history as an xlsx workbook.
func (u *walletUsecase) Export(ctx context.Context, userID string) ([]byte, string, error) {
	txs, err := u.History(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheetName := "Transactions"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"DATE", "TYPE", "DIRECTION", "AMOUNT", "FROM", "TO", "JOB"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, tx := range txs {
		direction := "EXPENSE"
		if isIncome(userID, tx) {
			direction = "INCOME"
		}
		jobID := ""
		if tx.JobID != nil {
			jobID = *tx.JobID
		}
		values := []any{
			tx.CreatedAt.Format("2006-01-02 15:04:05"),
			strings.ToUpper(string(tx.Type)),
			direction,
			tx.Amount,
			tx.FromID,
			strings.Join(tx.ToIDs, ", "),
			jobID,
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	summary := summarize(userID, txs)
	footer := len(txs) + 3
	for i, row := range [][]any{
		{"TOTAL INCOME", summary.Income},
		{"TOTAL EXPENSES", summary.Expenses},
		{"BALANCE", summary.Balance},
	} {
		labelCell, _ := excelize.CoordinatesToCellName(3, footer+i)
		valueCell, _ := excelize.CoordinatesToCellName(4, footer+i)
		f.SetCellValue(sheetName, labelCell, row[0])
		f.SetCellValue(sheetName, valueCell, row[1])
	}

	for i := range headers {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 22)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", apperror.Internal(fmt.Errorf("failed to write Excel file: %w", err))
	}

	filename := fmt.Sprintf("transactions_%s.xlsx", u.now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}
