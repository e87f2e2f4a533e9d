package accounting_test

import (
	"testing"
	"time"

	"github.com/arthaworks/ledgerengine/internal/apperrors"
	"github.com/arthaworks/ledgerengine/internal/core/domain"
	"github.com/arthaworks/ledgerengine/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionBuilder_BuildBalanced(t *testing.T) {
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	data, err := accounting.NewTransactionBuilder("IDR").
		SetDescription("cash sale").
		SetDate(date).
		SetReference("INV-0042").
		Debit("1000", decimal.NewFromInt(500000), "cash received").
		Credit("4000", decimal.NewFromInt(500000)).
		Build()

	require.NoError(t, err)
	assert.Equal(t, "cash sale", data.Description)
	assert.Equal(t, date, data.TransactionDate)
	assert.Equal(t, "INV-0042", data.Reference)
	require.Len(t, data.Entries, 2)
	assert.Equal(t, "cash received", data.Entries[0].Description)
	assert.True(t, data.Entries[0].DebitAmount.Equal(decimal.NewFromInt(500000)))
	assert.True(t, data.Entries[1].CreditAmount.Equal(decimal.NewFromInt(500000)))
}

func TestTransactionBuilder_RoundsAmounts(t *testing.T) {
	// 10.005 rounds up to 10.01 and 10.0049 down to 10.00; the remaining
	// cent of drift sits exactly on the tolerance, so the build succeeds.
	data, err := accounting.NewTransactionBuilder("USD").
		SetDescription("fx fee").
		SetDate(time.Now()).
		Debit("6000", decimal.NewFromFloat(10.005)).
		Credit("1000", decimal.NewFromFloat(10.0049)).
		Build()

	require.NoError(t, err)
	assert.True(t, data.Entries[0].DebitAmount.Equal(decimal.NewFromFloat(10.01)), "got %s", data.Entries[0].DebitAmount)
	assert.True(t, data.Entries[1].CreditAmount.Equal(decimal.NewFromFloat(10.0)), "got %s", data.Entries[1].CreditAmount)
}

func TestTransactionBuilder_BuildUnbalancedFails(t *testing.T) {
	_, err := accounting.NewTransactionBuilder("IDR").
		SetDescription("broken").
		SetDate(time.Now()).
		Debit("1000", decimal.NewFromInt(100)).
		Credit("4000", decimal.NewFromInt(50)).
		Build()

	require.Error(t, err)
	ledgerErr, ok := apperrors.AsLedgerError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindDoubleEntry, ledgerErr.Kind)
	require.Len(t, ledgerErr.Details, 1)
	assert.Equal(t, domain.CodeUnbalancedTransaction, ledgerErr.Details[0].Code)
}

func TestTransactionBuilder_HeaderDefectsDoNotBlockBuild(t *testing.T) {
	// Build enforces balance rules only; a missing description is the
	// caller's problem to surface through Validate.
	b := accounting.NewTransactionBuilder("IDR").
		Debit("1000", decimal.NewFromInt(100)).
		Credit("4000", decimal.NewFromInt(100))

	assert.NotEmpty(t, b.Validate())

	data, err := b.Build()
	require.NoError(t, err)
	assert.Empty(t, data.Description)
}

func TestTransactionBuilder_Reset(t *testing.T) {
	b := accounting.NewTransactionBuilder("SGD").
		SetDescription("first").
		Debit("1000", decimal.NewFromInt(10))

	b.Reset()

	_, err := b.Build()
	require.Error(t, err) // no entries after reset

	data, err := b.SetDescription("second").
		SetDate(time.Now()).
		Debit("1000", decimal.NewFromInt(25)).
		Credit("4000", decimal.NewFromInt(25)).
		Build()
	require.NoError(t, err)
	assert.Equal(t, "SGD", data.CurrencyCode)
	assert.Equal(t, "second", data.Description)
}
