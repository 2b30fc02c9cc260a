package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appledger "github.com/jcastell/milasset-api/internal/application/ledger"
	"github.com/jcastell/milasset-api/internal/domain"
)

func TestParseDate(t *testing.T) {
	got, err := appledger.ParseDate("purchase_date", "2025-01-05")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC), got)

	_, err = appledger.ParseDate("purchase_date", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = appledger.ParseDate("purchase_date", "05/01/2025")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = appledger.ParseDate("purchase_date", "2025-02-30")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseOptionalDate(t *testing.T) {
	got, err := appledger.ParseOptionalDate("start_date", "")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = appledger.ParseOptionalDate("start_date", "2025-01-05")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC), *got)
}
