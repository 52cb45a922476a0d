// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stackedmap_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vechain/tokenfarm/stackedmap"
)

func TestStackedMap(t *testing.T) {
	assert := assert.New(t)
	src := map[string]string{"foo": "bar"}

	sm := stackedmap.New(func(key string) (string, bool, error) {
		v, ok := src[key]
		return v, ok, nil
	})

	get := func(key string) string {
		v, _, err := sm.Get(key)
		assert.NoError(err)
		return v
	}

	assert.Equal(1, sm.Depth())
	assert.Equal("bar", get("foo"))

	rev := sm.Push()
	assert.Equal(1, rev)
	sm.Put("foo", "baz")
	assert.Equal("baz", get("foo"))
	sm.Put("foo", "baz1")
	assert.Equal("baz1", get("foo"))

	sm.Push()
	sm.Put("foo", "qux")
	assert.Equal("qux", get("foo"))

	sm.Pop()
	assert.Equal("baz1", get("foo"))

	sm.PopTo(rev)
	assert.Equal(1, sm.Depth())
	assert.Equal("bar", get("foo"))

	_, ok, _ := sm.Get("missing")
	assert.False(ok)
}

func TestStackedMapJournal(t *testing.T) {
	sm := stackedmap.New(func(key string) (int, bool, error) {
		return 0, false, nil
	})

	sm.Put("a", 1)
	sm.Push()
	sm.Put("b", 2)
	sm.Put("a", 3)
	rev := sm.Push()
	sm.Put("c", 4)
	sm.PopTo(rev)

	var keys []string
	var values []int
	sm.Journal(func(k string, v int) bool {
		keys = append(keys, k)
		values = append(values, v)
		return true
	})
	assert.Equal(t, []string{"a", "b", "a"}, keys)
	assert.Equal(t, []int{1, 2, 3}, values)

	var count int
	sm.Journal(func(string, int) bool {
		count++
		return false
	})
	assert.Equal(t, 1, count)
}

func TestStackedMapSourceError(t *testing.T) {
	errSrc := errors.New("source failure")
	sm := stackedmap.New(func(key string) (int, bool, error) {
		return 0, false, errSrc
	})

	_, _, err := sm.Get("x")
	assert.Equal(t, errSrc, err)

	sm.Put("x", 1)
	v, ok, err := sm.Get("x")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}
