package requirement

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rolegate/internal/domain/entity"
)

func TestFreeCheck(t *testing.T) {
	checker, err := newFree(entity.Requirement{ID: 1})
	require.NoError(t, err)

	users := []entity.User{
		{ID: 1, Addresses: []string{"0xabc", "0xdef"}},
		{ID: 2, Addresses: nil},
	}

	rows := checker.Check(context.Background(), users)

	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, uint64(1), r.RequirementID)
		assert.Equal(t, uint64(1), r.UserID)
		require.NotNil(t, r.Access)
		assert.True(t, *r.Access)
		require.NotNil(t, r.Amount)
		assert.Equal(t, 1.0, *r.Amount)
	}
}

func TestAllowlistCheck(t *testing.T) {
	req := entity.Requirement{
		ID:   2,
		Data: &entity.RequirementData{Addresses: []string{"0xABC"}},
	}
	checker, err := newAllowlist(req)
	require.NoError(t, err)

	users := []entity.User{
		{ID: 1, Addresses: []string{"0xabc", "0xdef"}},
	}
	rows := checker.Check(context.Background(), users)
	require.Len(t, rows, 2)

	assert.True(t, *rows[0].Access)
	assert.Equal(t, 1.0, *rows[0].Amount)
	assert.False(t, *rows[1].Access)
	assert.Equal(t, 0.0, *rows[1].Amount)
}

func TestAllowlistMissingAddresses(t *testing.T) {
	_, err := newAllowlist(entity.Requirement{ID: 3})
	require.Error(t, err)
	var constructionErr *ConstructionError
	require.ErrorAs(t, err, &constructionErr)
	assert.Equal(t, "MissingField", constructionErr.Kind)
}
