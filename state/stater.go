// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	lru "github.com/hashicorp/golang-lru"
	"github.com/vechain/tokenfarm/kv"
)

const storageCacheSize = 4096

// Stater is the state creator.
type Stater struct {
	db    kv.Store
	cache *lru.Cache
}

// NewStater create a new stater.
func NewStater(db kv.Store) *Stater {
	cache, _ := lru.New(storageCacheSize)
	return &Stater{db, cache}
}

// NewState create a new state object on top of the committed storage.
func (s *Stater) NewState() *State {
	return New(kv.Bucket(StoreName).NewGetter(s.db), s.cache)
}

// Store returns the underlying store, used to commit stages.
func (s *Stater) Store() kv.Store {
	return s.db
}
