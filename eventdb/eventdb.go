// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package eventdb stores the pool's activity history in SQLite and answers
// filtered queries over it.
package eventdb

import (
	"context"
	"database/sql"
	"math/big"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/vechain/stakepool/stakepool"
)

//EventDB manages recorded pool activities.
type EventDB struct {
	path          string
	db            *sql.DB
	driverVersion string
}

// New create or open event db at given path.
func New(path string) (eventDB *EventDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if eventDB == nil {
			db.Close()
		}
	}()
	if _, err := db.Exec(activityTableSchema); err != nil {
		return nil, err
	}
	driverVer, _, _ := sqlite3.Version()
	return &EventDB{
		path:          path,
		db:            db,
		driverVersion: driverVer,
	}, nil
}

// NewMem create a memory sqlite db.
func NewMem() (*EventDB, error) {
	return New(":memory:")
}

// Append saves events into db, assigning each its sequence number.
func (db *EventDB) Append(events []*Event) error {
	if len(events) == 0 {
		return nil
	}
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	for _, event := range events {
		res, err := tx.Exec("INSERT INTO activity(ts, kind, account, amount, phase) VALUES (?, ?, ?, ?, ?);",
			event.Timestamp,
			string(event.Kind),
			event.Account.Bytes(),
			amountValue(event.Amount),
			event.Phase)
		if err != nil {
			tx.Rollback()
			return err
		}
		seq, err := res.LastInsertId()
		if err != nil {
			tx.Rollback()
			return err
		}
		event.Seq = uint64(seq)
	}
	return tx.Commit()
}

//NewestSeq returns the sequence of the last recorded activity, zero when empty.
func (db *EventDB) NewestSeq() (uint64, error) {
	row := db.db.QueryRow("SELECT IFNULL(MAX(seq), 0) FROM activity")
	var seq uint64
	if err := row.Scan(&seq); err != nil {
		return 0, err
	}
	return seq, nil
}

//Filter return events with options
func (db *EventDB) Filter(ctx context.Context, filter *Filter) ([]*Event, error) {
	if filter == nil {
		return db.query(ctx, "SELECT * FROM activity")
	}
	var args []interface{}
	stmt := "SELECT * FROM activity WHERE 1"
	if filter.Range != nil {
		args = append(args, filter.Range.From)
		stmt += " AND ts >= ? "
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			stmt += " AND ts <= ? "
		}
	}
	if filter.Account != nil {
		args = append(args, filter.Account.Bytes())
		stmt += " AND account = ? "
	}
	length := len(filter.Kinds)
	if length > 0 {
		for i, kind := range filter.Kinds {
			if i == 0 {
				stmt += " AND (( 1 "
			} else {
				stmt += " OR ( 1 "
			}
			args = append(args, string(kind))
			stmt += " AND kind = ? "
			if i == length-1 {
				stmt += " )) "
			} else {
				stmt += " ) "
			}
		}
	}

	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC "
	} else {
		stmt += " ORDER BY seq ASC "
	}

	if filter.Options != nil {
		stmt += " limit ?, ? "
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.query(ctx, stmt, args...)
}

//query query events
func (db *EventDB) query(ctx context.Context, stmt string, args ...interface{}) ([]*Event, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			seq     uint64
			ts      uint64
			kind    string
			account []byte
			amount  []byte
			phase   uint32
		)
		if err := rows.Scan(
			&seq,
			&ts,
			&kind,
			&account,
			&amount,
			&phase,
		); err != nil {
			return nil, err
		}
		events = append(events, &Event{
			Seq:       seq,
			Timestamp: ts,
			Kind:      Kind(kind),
			Account:   stakepool.BytesToAddress(account),
			Amount:    new(big.Int).SetBytes(amount),
			Phase:     phase,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

//Path return db's directory
func (db *EventDB) Path() string {
	return db.path
}

//Close close sqlite
func (db *EventDB) Close() {
	db.db.Close()
}

func amountValue(amount *big.Int) []byte {
	if amount == nil {
		return nil
	}
	return amount.Bytes()
}
