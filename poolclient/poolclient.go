// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package poolclient wraps the HTTP and websocket APIs of a stakepool
// daemon behind typed methods.
package poolclient

import (
	"fmt"
	"strconv"

	"github.com/vechain/stakepool/api/events"
	"github.com/vechain/stakepool/api/staking"
	"github.com/vechain/stakepool/api/subscriptions"
	"github.com/vechain/stakepool/poolclient/common"
	"github.com/vechain/stakepool/poolclient/httpclient"
	"github.com/vechain/stakepool/poolclient/wsclient"
	"github.com/vechain/stakepool/stakepool"
)

type Client struct {
	httpConn *httpclient.Client
	wsConn   *wsclient.Client
}

func New(url string) *Client {
	return &Client{
		httpConn: httpclient.New(url),
	}
}

func NewWithWS(url string) (*Client, error) {
	wsClient, err := wsclient.NewClient(url)
	if err != nil {
		return nil, err
	}

	return &Client{
		httpConn: httpclient.New(url),
		wsConn:   wsClient,
	}, nil
}

func (c *Client) RawHTTPClient() *httpclient.Client {
	return c.httpConn
}

func (c *Client) RawWSClient() *wsclient.Client {
	return c.wsConn
}

// Status reports the pool summary. A non-zero now evaluates the projected
// phase at that timestamp instead of the wall clock.
func (c *Client) Status(now uint64) (*staking.Status, error) {
	return c.httpConn.GetStatus(now)
}

func (c *Client) ValidSupplies() ([]*staking.SupplyPoint, error) {
	return c.httpConn.GetSupplies()
}

func (c *Client) Account(addr *stakepool.Address) (*staking.AccountInfo, error) {
	return c.httpConn.GetAccount(addr)
}

func (c *Client) AccountHistory(addr *stakepool.Address, from uint32) ([]*staking.HistoryEntry, error) {
	return c.httpConn.GetAccountHistory(addr, from)
}

func (c *Client) Distributions(from, limit uint32) ([]*staking.Distribution, error) {
	return c.httpConn.GetDistributions(from, limit)
}

func (c *Client) Distribution(phase uint32) (*staking.Distribution, error) {
	return c.httpConn.GetDistribution(phase)
}

func (c *Client) Operators() ([]*staking.Operator, error) {
	return c.httpConn.GetOperators()
}

func (c *Client) FilterEvents(req *events.EventFilter) ([]*events.FilteredEvent, error) {
	return c.httpConn.FilterEvents(req)
}

// SubscribeActivity streams activities recorded after the subscription is
// established. Use SubscribeActivityAt to replay from a position instead.
func (c *Client) SubscribeActivity() (<-chan common.EventWrapper[*subscriptions.ActivityMessage], error) {
	if c.wsConn == nil {
		return nil, fmt.Errorf("not a websocket typed client")
	}
	return c.wsConn.SubscribeActivity("")
}

// SubscribeActivityAt replays recorded activities after the given sequence
// number, then streams new ones.
func (c *Client) SubscribeActivityAt(pos uint64) (<-chan common.EventWrapper[*subscriptions.ActivityMessage], error) {
	if c.wsConn == nil {
		return nil, fmt.Errorf("not a websocket typed client")
	}
	return c.wsConn.SubscribeActivity("pos=" + strconv.FormatUint(pos, 10))
}
