// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package abi

import (
	"fmt"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/vechain/tokenfarm/farm"
)

// Event see abi.Event in go-ethereum.
type Event struct {
	id    farm.Bytes32
	event *ethabi.Event
}

func newEvent(event *ethabi.Event) *Event {
	return &Event{
		farm.Bytes32(event.ID),
		event,
	}
}

// ID returns event id, the first topic of its logs.
func (e *Event) ID() farm.Bytes32 {
	return e.id
}

// Name returns event name.
func (e *Event) Name() string {
	return e.event.Name
}

// Encode encodes all args in declaration order into topics and data.
// Indexed args must be addresses.
func (e *Event) Encode(args ...any) ([]farm.Bytes32, []byte, error) {
	if len(args) != len(e.event.Inputs) {
		return nil, nil, fmt.Errorf("event %s: expected %d args, got %d", e.event.Name, len(e.event.Inputs), len(args))
	}
	topics := []farm.Bytes32{e.id}
	var nonIndexed []any
	for i, input := range e.event.Inputs {
		if !input.Indexed {
			nonIndexed = append(nonIndexed, normalize(args[i]))
			continue
		}
		switch v := args[i].(type) {
		case farm.Address:
			topics = append(topics, farm.BytesToBytes32(v[:]))
		case common.Address:
			topics = append(topics, farm.BytesToBytes32(v[:]))
		default:
			return nil, nil, fmt.Errorf("event %s: unsupported indexed arg %T", e.event.Name, v)
		}
	}
	data, err := e.event.Inputs.NonIndexed().Pack(nonIndexed...)
	if err != nil {
		return nil, nil, err
	}
	return topics, data, nil
}

// Decode decodes the non-indexed args of event data.
func (e *Event) Decode(data []byte, v any) error {
	return unpack(e.event.Inputs.NonIndexed(), v, data)
}

// DecodeToMap decodes a log into named values, indexed args included.
func (e *Event) DecodeToMap(topics []farm.Bytes32, data []byte) (map[string]any, error) {
	if len(topics) == 0 || topics[0] != e.id {
		return nil, fmt.Errorf("event %s: topic mismatch", e.event.Name)
	}
	out := make(map[string]any)
	if err := e.event.Inputs.NonIndexed().UnpackIntoMap(out, data); err != nil {
		return nil, err
	}
	var indexed ethabi.Arguments
	for _, input := range e.event.Inputs {
		if input.Indexed {
			indexed = append(indexed, input)
		}
	}
	hashes := make([]common.Hash, 0, len(topics)-1)
	for _, t := range topics[1:] {
		hashes = append(hashes, common.Hash(t))
	}
	if err := ethabi.ParseTopicsIntoMap(out, indexed, hashes); err != nil {
		return nil, err
	}
	return out, nil
}
