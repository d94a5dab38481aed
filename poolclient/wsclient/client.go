// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package wsclient

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/vechain/stakepool/api/subscriptions"
	"github.com/vechain/stakepool/poolclient/common"
)

// Client subscribes to the pool API's websocket endpoints.
type Client struct {
	host   string
	scheme string
}

// wsSchemes maps accepted URL schemes to their websocket counterparts.
var wsSchemes = map[string]string{
	"http":  "ws",
	"ws":    "ws",
	"https": "wss",
	"wss":   "wss",
}

// NewClient accepts an http, https, ws or wss URL and prepares a client
// dialing the matching websocket scheme.
func NewClient(rawURL string) (*Client, error) {
	scheme, host, found := strings.Cut(rawURL, "://")
	if !found {
		return nil, fmt.Errorf("invalid url")
	}
	wsScheme, ok := wsSchemes[scheme]
	if !ok {
		return nil, fmt.Errorf("invalid url")
	}

	return &Client{
		host:   strings.TrimSuffix(host, "/"),
		scheme: wsScheme,
	}, nil
}

// SubscribeActivity subscribes to the pool's recorded activities. The query
// may carry a pos parameter to replay activities after that sequence number.
func (c *Client) SubscribeActivity(query string) (<-chan common.EventWrapper[*subscriptions.ActivityMessage], error) {
	u := url.URL{
		Scheme:   c.scheme,
		Host:     c.host,
		Path:     "/subscriptions/activity",
		RawQuery: query,
	}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("unable to connect - %w", err)
	}
	return subscribe[subscriptions.ActivityMessage](conn), nil
}

// subscribe pumps messages from conn into the returned channel. A read
// failure, including the server closing the connection, is delivered as the
// last wrapper before the channel closes.
func subscribe[T any](conn *websocket.Conn) <-chan common.EventWrapper[*T] {
	events := make(chan common.EventWrapper[*T])

	go func() {
		defer close(events)
		defer conn.Close()

		for {
			var msg T
			if err := conn.ReadJSON(&msg); err != nil {
				events <- common.EventWrapper[*T]{Error: fmt.Errorf("%w: %w", common.ErrUnexpectedMsg, err)}
				return
			}
			events <- common.EventWrapper[*T]{Data: &msg}
		}
	}()

	return events
}
