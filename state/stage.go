// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"sort"

	"github.com/ethereum/go-ethereum/rlp"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/kv"
)

type stagedEntry struct {
	key   []byte
	value rlp.RawValue
}

// Stage abstracts changes on the contract storage.
type Stage struct {
	entries []stagedEntry
	keys    []storageKey
	cache   *lru.Cache
}

func newStage(changes map[storageKey]rlp.RawValue, cache *lru.Cache) *Stage {
	stage := &Stage{
		entries: make([]stagedEntry, 0, len(changes)),
		keys:    make([]storageKey, 0, len(changes)),
		cache:   cache,
	}
	for k, v := range changes {
		stage.entries = append(stage.entries, stagedEntry{k.bytes(), v})
		stage.keys = append(stage.keys, k)
	}
	// deterministic order for hashing
	sort.Slice(stage.entries, func(i, j int) bool {
		return bytes.Compare(stage.entries[i].key, stage.entries[j].key) < 0
	})
	return stage
}

// Len returns the count of changed slots.
func (s *Stage) Len() int {
	return len(s.entries)
}

// Hash computes the digest of all changes.
func (s *Stage) Hash() farm.Bytes32 {
	data := make([][]byte, 0, len(s.entries)*2)
	for _, e := range s.entries {
		data = append(data, e.key, e.value)
	}
	return farm.Blake2b(data...)
}

// Commit writes all changes into the given store.
func (s *Stage) Commit(store kv.Store) error {
	bulk := kv.Bucket(StoreName).NewStore(store).Bulk()
	for _, e := range s.entries {
		var err error
		if len(e.value) == 0 {
			err = bulk.Delete(e.key)
		} else {
			err = bulk.Put(e.key, e.value)
		}
		if err != nil {
			return errors.Wrap(err, "stage")
		}
	}
	if err := bulk.Write(); err != nil {
		return errors.Wrap(err, "commit state")
	}
	metricStorageWrite().Add(int64(len(s.entries)))

	if s.cache != nil {
		// cached values are stale now
		for _, k := range s.keys {
			s.cache.Remove(k)
		}
	}
	return nil
}
