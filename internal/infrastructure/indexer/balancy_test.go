package indexer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rolegate/internal/domain/entity"
)

func TestGetTotalSemiFungibleForAddressSumsMatchingContract(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"erc1155": [
				{"Addr": "0xTOKEN", "TokenId": "1", "Amount": "3"},
				{"Addr": "0xtoken", "TokenId": "2", "Amount": "4"},
				{"Addr": "0xOTHER", "TokenId": "1", "Amount": "100"}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	total, err := client.GetTotalSemiFungibleForAddress(ctx, entity.ChainEthereum, "0xToken", "0xaddr")
	require.NoError(t, err)
	assert.Equal(t, "7", total.String())
}

func TestAddressTokensMapsStatusCodes(t *testing.T) {
	cases := []struct {
		status   int
		wantKind string
	}{
		{http.StatusBadRequest, "InvalidRequest"},
		{http.StatusTooManyRequests, "TooManyRequests"},
		{http.StatusInternalServerError, "Unknown"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.wantKind, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer server.Close()

			client := NewClient(server.URL, time.Second)
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			_, err := client.addressTokens(ctx, entity.ChainEthereum, "0xaddr")
			require.Error(t, err)
			statusErr, ok := err.(*StatusError)
			require.True(t, ok)
			assert.Equal(t, tc.wantKind, statusErr.Kind)
		})
	}
}

func TestAddressTokensRejectsUnsupportedChain(t *testing.T) {
	client := NewClient("", time.Second)
	_, err := client.addressTokens(context.Background(), entity.ChainArbitrum, "0xaddr")
	require.Error(t, err)
	_, ok := err.(*ErrChainNotSupported)
	assert.True(t, ok)
}
