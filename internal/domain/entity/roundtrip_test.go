package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequirementRoundTrip(t *testing.T) {
	chain := ChainPolygon
	addr := "0xTokenAddress"
	min := "1.5"
	req := Requirement{
		ID:      42,
		Type:    RequirementErc20,
		Address: &addr,
		Chain:   &chain,
		Data: &RequirementData{
			ID:        NewU256FromInt64(9),
			Addresses: []string{"0xabc", "0xdef"},
			MinAmount: &min,
		},
	}

	data, err := json.Marshal(req)
	require.NoError(t, err)

	var decoded Requirement
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, req.ID, decoded.ID)
	assert.Equal(t, req.Type, decoded.Type)
	require.NotNil(t, decoded.Address)
	assert.Equal(t, *req.Address, *decoded.Address)
	require.NotNil(t, decoded.Chain)
	assert.Equal(t, *req.Chain, *decoded.Chain)
	require.NotNil(t, decoded.Data)
	assert.Equal(t, req.Data.Addresses, decoded.Data.Addresses)
	assert.Equal(t, 0, req.Data.ID.BigInt().Cmp(decoded.Data.ID.BigInt()))
	require.NotNil(t, decoded.Data.MinAmount)
	assert.Equal(t, *req.Data.MinAmount, *decoded.Data.MinAmount)
}

func TestUserRoundTrip(t *testing.T) {
	token := "secret"
	user := User{
		ID:        1,
		Addresses: []string{"0xabc"},
		PlatformUsers: []PlatformUser{
			{PlatformID: 1, PlatformName: PlatformDiscord, PlatformUserID: "disc#1", PlatformUserData: &PlatformUserData{AccessToken: &token}},
		},
	}

	data, err := json.Marshal(user)
	require.NoError(t, err)

	var decoded User
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, user.Addresses, decoded.Addresses)
	require.Len(t, decoded.PlatformUsers, 1)
	assert.Equal(t, PlatformDiscord, decoded.PlatformUsers[0].PlatformName)
}

func TestAccessErrorsFieldNeverOmitted(t *testing.T) {
	access := Access{ID: 1}
	data, err := json.Marshal(access)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"errors":null`)
}

func TestParseLimitsSilentlyDropsUnparseable(t *testing.T) {
	bad := "not-a-number"
	d := &RequirementData{MinAmount: &bad}
	limits := d.ParseLimits()
	assert.Nil(t, limits.MinAmount)
}

func TestParseLimitsParsesValid(t *testing.T) {
	min := "1.25"
	max := "9"
	d := &RequirementData{MinAmount: &min, MaxAmount: &max}
	limits := d.ParseLimits()
	require.NotNil(t, limits.MinAmount)
	require.NotNil(t, limits.MaxAmount)
	assert.Equal(t, 1.25, *limits.MinAmount)
	assert.Equal(t, 9.0, *limits.MaxAmount)
}

func TestChainValid(t *testing.T) {
	assert.True(t, ChainEthereum.Valid())
	assert.False(t, Chain("NOT_A_CHAIN").Valid())
	assert.Equal(t, "ETHEREUM_RPC", ChainEthereum.EnvVar())
}
