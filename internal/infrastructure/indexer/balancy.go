// Package indexer implements the Balancy-style HTTP indexer provider: a
// stateless client against a fixed base URL that returns every token
// holding of an address in one response, used as the EVM provider's
// fallback for id-less ERC-1155 lookups. It does not implement
// port.BalanceQuerier and is not registered in the chain registry.
package indexer

import (
	"context"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"

	"rolegate/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const defaultBaseURL = "https://balancy.guild.xyz/api"

// chainIDs is the closed set of chains the indexer backend supports,
// mirroring the original `ChainNotSupported` gate.
var chainIDs = map[entity.Chain]int{
	entity.ChainEthereum: 1,
	entity.ChainBsc:      56,
	entity.ChainGnosis:   100,
	entity.ChainPolygon:  137,
}

// StatusError wraps the indexer's HTTP status-code taxonomy: 200 -> nil,
// 400 -> InvalidRequest, 429 -> TooManyRequests, anything else -> Unknown.
type StatusError struct {
	Code int
	Kind string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("indexer: %s (status %d)", e.Kind, e.Code)
}

// ErrChainNotSupported is returned when chain isn't in the indexer's closed
// supported set.
type ErrChainNotSupported struct{ Chain entity.Chain }

func (e *ErrChainNotSupported) Error() string {
	return fmt.Sprintf("indexer: chain not supported: %s", e.Chain)
}

type erc20Token struct {
	Address string `json:"address"`
	Amount  string `json:"amount"`
}

type erc721Token struct {
	Address string `json:"address"`
	TokenID string `json:"tokenId"`
}

type erc1155Token struct {
	Addr    string `json:"Addr"`
	TokenID string `json:"TokenId"`
	Amount  string `json:"Amount"`
}

type addressTokensResponse struct {
	Erc20   []erc20Token   `json:"erc20"`
	Erc721  []erc721Token  `json:"erc721"`
	Erc1155 []erc1155Token `json:"erc1155"`
}

// Client is a thin fasthttp-backed HTTP client for the indexer API
// (fasthttp.Client + jsoniter, ctx-deadline-aware timeouts).
type Client struct {
	baseURL    string
	httpClient *fasthttp.Client
	timeout    time.Duration
}

// NewClient builds an indexer client. baseURL defaults to the production
// Balancy endpoint when empty.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &fasthttp.Client{},
		timeout:    timeout,
	}
}

// GetTotalSemiFungibleForAddress lists every token held by addr on chain
// and sums the amounts of the ones whose contract equals token
// (case-insensitive), implementing the EVM provider's id-less ERC-1155
// fallback.
func (c *Client) GetTotalSemiFungibleForAddress(ctx context.Context, chain entity.Chain, token, addr string) (*big.Int, error) {
	resp, err := c.addressTokens(ctx, chain, addr)
	if err != nil {
		return nil, err
	}

	total := big.NewInt(0)
	for _, t := range resp.Erc1155 {
		if !strings.EqualFold(t.Addr, token) {
			continue
		}
		amount, ok := new(big.Int).SetString(t.Amount, 10)
		if !ok {
			continue
		}
		total.Add(total, amount)
	}
	return total, nil
}

func (c *Client) addressTokens(ctx context.Context, chain entity.Chain, addr string) (*addressTokensResponse, error) {
	chainID, ok := chainIDs[chain]
	if !ok {
		return nil, &ErrChainNotSupported{Chain: chain}
	}

	url := fmt.Sprintf("%s/addressTokens?address=%s&chain=%s", c.baseURL, addr, strconv.Itoa(chainID))

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.httpClient.DoDeadline(req, resp, deadline)
	} else {
		err = c.httpClient.DoTimeout(req, resp, c.timeout)
	}
	if err != nil {
		return nil, fmt.Errorf("indexer: request failed: %w", err)
	}

	switch resp.StatusCode() {
	case fasthttp.StatusOK:
		var parsed addressTokensResponse
		if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
			return nil, fmt.Errorf("indexer: decoding response: %w", err)
		}
		return &parsed, nil
	case fasthttp.StatusBadRequest:
		return nil, &StatusError{Code: resp.StatusCode(), Kind: "InvalidRequest"}
	case fasthttp.StatusTooManyRequests:
		return nil, &StatusError{Code: resp.StatusCode(), Kind: "TooManyRequests"}
	default:
		return nil, &StatusError{Code: resp.StatusCode(), Kind: "Unknown"}
	}
}
