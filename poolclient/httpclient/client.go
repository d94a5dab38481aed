// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package httpclient provides an HTTP client to interact with a stakepool daemon.
// It offers various methods to retrieve the pool status, staker accounts, settled
// distributions and recorded activities through HTTP requests.
package httpclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/vechain/stakepool/api/events"
	"github.com/vechain/stakepool/api/staking"
	"github.com/vechain/stakepool/poolclient/common"
	"github.com/vechain/stakepool/stakepool"
)

// Client represents the HTTP client for interacting with a stakepool daemon.
// It manages communication via HTTP requests.
type Client struct {
	url string
	c   *http.Client
}

// New creates a new Client with the provided URL.
func New(url string) *Client {
	return NewWithHTTP(url, http.DefaultClient)
}

func NewWithHTTP(url string, c *http.Client) *Client {
	return &Client{
		url: url,
		c:   c,
	}
}

// GetStatus retrieves the pool summary. A non-zero now evaluates the
// projected phase at that timestamp instead of the wall clock.
func (c *Client) GetStatus(now uint64) (*staking.Status, error) {
	url := c.url + "/staking"
	if now != 0 {
		url += "?now=" + strconv.FormatUint(now, 10)
	}

	body, err := c.httpGET(url)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve pool status - %w", err)
	}

	var status staking.Status
	if err = json.Unmarshal(body, &status); err != nil {
		return nil, fmt.Errorf("unable to unmarshal pool status - %w", err)
	}

	return &status, nil
}

// GetSupplies retrieves the pool's reward eligible supply timeline.
func (c *Client) GetSupplies() ([]*staking.SupplyPoint, error) {
	body, err := c.httpGET(c.url + "/staking/supplies")
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve supply timeline - %w", err)
	}

	var points []*staking.SupplyPoint
	if err = json.Unmarshal(body, &points); err != nil {
		return nil, fmt.Errorf("unable to unmarshal supply timeline - %w", err)
	}

	return points, nil
}

// GetAccount retrieves the staker account for the given address.
func (c *Client) GetAccount(addr *stakepool.Address) (*staking.AccountInfo, error) {
	body, err := c.httpGET(c.url + "/staking/accounts/" + addr.String())
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve account - %w", err)
	}

	var account staking.AccountInfo
	if err = json.Unmarshal(body, &account); err != nil {
		return nil, fmt.Errorf("unable to unmarshal account - %w", err)
	}

	return &account, nil
}

// GetAccountHistory retrieves the per-phase reward outcomes of the given
// staker, starting at the given phase.
func (c *Client) GetAccountHistory(addr *stakepool.Address, from uint32) ([]*staking.HistoryEntry, error) {
	url := c.url + "/staking/accounts/" + addr.String() + "/history"
	if from != 0 {
		url += "?from=" + strconv.FormatUint(uint64(from), 10)
	}

	body, err := c.httpGET(url)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve account history - %w", err)
	}

	var entries []*staking.HistoryEntry
	if err = json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("unable to unmarshal account history - %w", err)
	}

	return entries, nil
}

// GetDistributions retrieves settled distributions in phase order starting
// at the given phase, at most limit records. A zero limit means no cap.
func (c *Client) GetDistributions(from, limit uint32) ([]*staking.Distribution, error) {
	url := c.url + "/staking/distributions"
	params := []string{}

	if from != 0 {
		params = append(params, "from="+strconv.FormatUint(uint64(from), 10))
	}

	if limit != 0 {
		params = append(params, "limit="+strconv.FormatUint(uint64(limit), 10))
	}

	if len(params) > 0 {
		url += "?" + strings.Join(params, "&")
	}

	body, err := c.httpGET(url)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve distributions - %w", err)
	}

	var dists []*staking.Distribution
	if err = json.Unmarshal(body, &dists); err != nil {
		return nil, fmt.Errorf("unable to unmarshal distributions - %w", err)
	}

	return dists, nil
}

// GetDistribution retrieves the settled record of the given phase.
func (c *Client) GetDistribution(phase uint32) (*staking.Distribution, error) {
	body, err := c.httpGET(c.url + "/staking/distributions/" + strconv.FormatUint(uint64(phase), 10))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve distribution - %w", err)
	}

	if len(body) == 0 || bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return nil, common.ErrNotFound
	}

	var dist staking.Distribution
	if err = json.Unmarshal(body, &dist); err != nil {
		return nil, fmt.Errorf("unable to unmarshal distribution - %w", err)
	}

	return &dist, nil
}

// GetOperators retrieves the registered distribution operators.
func (c *Client) GetOperators() ([]*staking.Operator, error) {
	body, err := c.httpGET(c.url + "/staking/operators")
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve operators - %w", err)
	}

	var operators []*staking.Operator
	if err = json.Unmarshal(body, &operators); err != nil {
		return nil, fmt.Errorf("unable to unmarshal operators - %w", err)
	}

	return operators, nil
}

// FilterEvents filters recorded activities based on the provided event filter.
func (c *Client) FilterEvents(req *events.EventFilter) ([]*events.FilteredEvent, error) {
	body, err := c.httpPOST(c.url+"/events", req)
	if err != nil {
		return nil, fmt.Errorf("unable to filter activities - %w", err)
	}

	var filteredEvents []*events.FilteredEvent
	if err = json.Unmarshal(body, &filteredEvents); err != nil {
		return nil, fmt.Errorf("unable to unmarshal activities - %w", err)
	}

	return filteredEvents, nil
}

// RawHTTPPost sends a raw HTTP POST request to the specified URL with the provided data.
func (c *Client) RawHTTPPost(url string, calldata any) ([]byte, int, error) {
	var data []byte
	var err error

	if _, ok := calldata.([]byte); ok {
		data = calldata.([]byte)
	} else {
		data, err = json.Marshal(calldata)
		if err != nil {
			return nil, 0, fmt.Errorf("unable to marshal payload - %w", err)
		}
	}

	return c.rawHTTPRequest("POST", c.url+url, bytes.NewBuffer(data))
}

// RawHTTPGet sends a raw HTTP GET request to the specified URL.
func (c *Client) RawHTTPGet(url string) ([]byte, int, error) {
	return c.rawHTTPRequest("GET", c.url+url, nil)
}

func (c *Client) httpGET(url string) ([]byte, error) {
	resp, err := c.c.Get(url)
	if err != nil {
		return nil, fmt.Errorf("unable to perform http GET - %w", err)
	}
	return validateResponse(resp)
}

func (c *Client) httpPOST(url string, obj any) ([]byte, error) {
	data, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("unable to marshal payload - %w", err)
	}
	resp, err := c.c.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unable to perform http POST - %w", err)
	}
	return validateResponse(resp)
}

func (c *Client) rawHTTPRequest(method string, url string, payload io.Reader) ([]byte, int, error) {
	req, err := http.NewRequest(method, url, payload)
	if err != nil {
		return nil, 0, fmt.Errorf("unable to create request - %w", err)
	}
	resp, err := c.c.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("unable to perform request - %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("unable to read response body - %w", err)
	}
	return body, resp.StatusCode, nil
}

func validateResponse(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, common.ErrNotFound
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("unable to read response body - %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d - %s", common.ErrNot200Status, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return body, nil
}
