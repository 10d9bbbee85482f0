package entity

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestU256UnmarshalsQuotedDecimalString(t *testing.T) {
	var data RequirementData
	require.NoError(t, json.Unmarshal([]byte(`{"id":"61313132343534"}`), &data))
	require.NotNil(t, data.ID)
	want, _ := new(big.Int).SetString("61313132343534", 10)
	assert.Equal(t, 0, want.Cmp(data.ID.BigInt()))
}

func TestU256UnmarshalsBareNumber(t *testing.T) {
	var data RequirementData
	require.NoError(t, json.Unmarshal([]byte(`{"id":10527}`), &data))
	require.NotNil(t, data.ID)
	assert.Equal(t, int64(10527), data.ID.BigInt().Int64())
}

func TestU256UnmarshalInvalidValueErrors(t *testing.T) {
	var data RequirementData
	err := json.Unmarshal([]byte(`{"id":"not-a-number"}`), &data)
	assert.Error(t, err)
}

func TestU256MarshalRoundTripsAsString(t *testing.T) {
	id := NewU256FromInt64(1234567890)
	out, err := json.Marshal(id)
	require.NoError(t, err)
	assert.Equal(t, `"1234567890"`, string(out))
}
