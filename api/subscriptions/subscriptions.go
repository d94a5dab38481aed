// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/api/utils"
	"github.com/vechain/stakepool/co"
	"github.com/vechain/stakepool/eventdb"
	"github.com/vechain/stakepool/pool"
)

// batch of activities read per poll
const batchLimit = 256

type Subscriptions struct {
	svc      *pool.Service
	db       *eventdb.EventDB
	upgrader *websocket.Upgrader
	done     chan struct{}
	wg       co.Goes
}

func New(svc *pool.Service, db *eventdb.EventDB, allowedOrigins []string) *Subscriptions {
	return &Subscriptions{
		svc: svc,
		db:  db,
		upgrader: &websocket.Upgrader{
			EnableCompression: true,
			CheckOrigin: func(req *http.Request) bool {
				origin := req.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if allowed == "*" || strings.EqualFold(allowed, origin) {
						return true
					}
				}
				return false
			},
		},
		done: make(chan struct{}),
	}
}

// handleSubscribeActivity replays recorded activities after the given
// position, then pushes new ones as they are recorded.
func (s *Subscriptions) handleSubscribeActivity(w http.ResponseWriter, req *http.Request) error {
	var position uint64
	if posParam := req.URL.Query().Get("pos"); posParam != "" {
		parsed, err := strconv.ParseUint(posParam, 10, 64)
		if err != nil {
			return utils.BadRequest(errors.WithMessage(err, "pos"))
		}
		position = parsed
	} else {
		// absent position subscribes from the log head, live only
		newest, err := s.db.NewestSeq()
		if err != nil {
			return err
		}
		position = newest
	}

	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	// the read pump only serves to detect the peer leaving
	closed := make(chan struct{})
	s.wg.Go(func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	waiter := s.svc.NewWaiter()
	for {
		// seqs are assigned densely from 1, so the position doubles as
		// the number of rows to skip
		batch, err := s.db.Filter(req.Context(), &eventdb.Filter{
			Options: &eventdb.Options{Offset: position, Limit: batchLimit},
		})
		if err != nil {
			return err
		}
		for _, event := range batch {
			if err := conn.WriteJSON(convertActivity(event)); err != nil {
				return err
			}
			position = event.Seq
		}
		if len(batch) == batchLimit {
			// more rows are already waiting
			continue
		}

		select {
		case <-req.Context().Done():
			return req.Context().Err()
		case <-s.done:
			return nil
		case <-closed:
			return nil
		case <-waiter.C():
		}
	}
}

// Close stops all active subscriptions.
func (s *Subscriptions) Close() {
	close(s.done)
	s.wg.Wait()
}

func (s *Subscriptions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/activity").
		Methods(http.MethodGet).
		Name("GET /subscriptions/activity").
		HandlerFunc(utils.WrapHandlerFunc(s.handleSubscribeActivity))
}
