// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package farm

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestBytes32JSON(t *testing.T) {
	id := Blake2b([]byte("genesis"))

	// held by value in a struct
	data, err := json.Marshal(struct {
		ID Bytes32 `json:"id"`
	}{id})
	require.NoError(t, err)
	assert.Equal(t, `{"id":"`+id.String()+`"}`, string(data))

	var decoded struct {
		ID *Bytes32 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.NotNil(t, decoded.ID)
	assert.Equal(t, id, *decoded.ID)

	var nilID *Bytes32
	data, err = json.Marshal(nilID)
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	assert.Error(t, json.Unmarshal([]byte(`"0x1234"`), new(Bytes32)))
}

func TestBytes32YAML(t *testing.T) {
	id := Blake2b([]byte("block"))
	data, err := yaml.Marshal(map[string]Bytes32{"id": id})
	require.NoError(t, err)
	assert.Contains(t, string(data), id.String())
}

func TestUint64ToBytes32(t *testing.T) {
	for _, i := range []uint64{0, 1, 255, 1 << 40, ^uint64(0)} {
		b := Uint64ToBytes32(i)
		assert.Equal(t, i, b.Uint64())
		assert.Equal(t, BytesToBytes32(new(big.Int).SetUint64(i).Bytes()), b)
	}
	assert.Equal(t, BytesToBytes32([]byte("users")), Slot("users"))
}
