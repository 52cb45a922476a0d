// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"database/sql"

	"github.com/vechain/tokenfarm/chain"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/tx"
)

const insertEventQuery = "INSERT OR REPLACE INTO event(seq, blockID, blockTime, txID, txOrigin, clauseIndex, address, topic0, topic1, topic2, topic3, topic4, data) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"

// Writer accumulates the events of written blocks until Commit.
type Writer struct {
	db      *LogDB
	events  []*Event
	blockID *farm.Bytes32
}

// Write collects all events of the given block. Reverted receipts carry no events.
func (w *Writer) Write(b *chain.Block, receipts tx.Receipts) error {
	var index uint32
	for _, receipt := range receipts {
		for clauseIndex, output := range receipt.Outputs {
			for _, ev := range output.Events {
				w.events = append(w.events, newEvent(b, index, receipt, uint32(clauseIndex), ev))
				index++
			}
		}
	}
	id := b.ID()
	w.blockID = &id
	return nil
}

// Commit writes accumulated events in one sql transaction.
func (w *Writer) Commit() error {
	// prepared outside of the sql transaction, which holds the only connection
	prepared, err := w.db.stmtCache.Prepare(insertEventQuery)
	if err != nil {
		return err
	}
	err = w.exec(func(tx *sql.Tx) error {
		insert := tx.Stmt(prepared)
		for _, ev := range w.events {
			if _, err := insert.Exec(
				newSequence(ev.BlockNumber, ev.Index),
				ev.BlockID.Bytes(),
				ev.BlockTime,
				ev.TxID.Bytes(),
				ev.TxOrigin.Bytes(),
				ev.ClauseIndex,
				ev.Address.Bytes(),
				topicValue(ev.Topics[0]),
				topicValue(ev.Topics[1]),
				topicValue(ev.Topics[2]),
				topicValue(ev.Topics[3]),
				topicValue(ev.Topics[4]),
				ev.Data,
			); err != nil {
				return err
			}
		}
		if w.blockID != nil {
			if _, err := tx.Exec("INSERT OR REPLACE INTO config(key, value) VALUES(?, ?)", configBlockIDKey, w.blockID.Bytes()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	metricWrittenEvents().Add(int64(len(w.events)))
	w.Rollback()
	return nil
}

// Rollback drops all uncommitted events.
func (w *Writer) Rollback() {
	w.events = nil
	w.blockID = nil
}

// Truncate deletes the events of blocks after blockNum (included).
func (w *Writer) Truncate(blockNum uint32) error {
	return w.exec(func(tx *sql.Tx) error {
		_, err := tx.Exec("DELETE FROM event WHERE seq >= ?", newSequence(blockNum, 0))
		return err
	})
}

// UncommittedCount returns the count of uncommitted events.
func (w *Writer) UncommittedCount() int {
	return len(w.events)
}

func (w *Writer) exec(proc func(*sql.Tx) error) error {
	tx, err := w.db.db.Begin()
	if err != nil {
		return err
	}
	if err := proc(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
