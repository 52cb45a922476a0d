// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package gascharger

import (
	"fmt"

	"github.com/vechain/tokenfarm/farm"
)

// GasUser is where the charged gas is finally spent.
type GasUser interface {
	UseGas(gas uint64)
}

// Test hook - only used during testing
var testHook func(*Charger) = nil

// Charger accounts gas of storage operations of a builtin contract
// and forwards it to the execution environment.
type Charger struct {
	user           GasUser
	sloadOps       uint64
	sstoreSetOps   uint64
	sstoreResetOps uint64
	transferOps    uint64
	customGas      uint64
	totalGas       uint64
}

func New(user GasUser) *Charger {
	charger := &Charger{
		user: user,
	}

	if testHook != nil {
		testHook(charger)
	}

	return charger
}

func (c *Charger) Charge(gas uint64) {
	c.totalGas += gas

	switch {
	case gas%farm.SstoreSetGas == 0 && gas > 0:
		c.sstoreSetOps += gas / farm.SstoreSetGas

	case gas%farm.SstoreResetGas == 0 && gas > 0:
		c.sstoreResetOps += gas / farm.SstoreResetGas

	case gas%farm.TransferGas == 0 && gas > 0:
		c.transferOps += gas / farm.TransferGas

	case gas%farm.SloadGas == 0 && gas > 0:
		c.sloadOps += gas / farm.SloadGas

	default:
		c.customGas += gas
	}

	if c.user != nil {
		c.user.UseGas(gas)
	}
}

func (c *Charger) Breakdown() string {
	return fmt.Sprintf(
		"SLOAD: %d ops (%d gas) | SSTORE_SET: %d ops (%d gas) | SSTORE_RESET: %d ops (%d gas) | TRANSFER: %d ops (%d gas) | CUSTOM: %d gas | TOTAL: %d gas",
		c.sloadOps,
		c.sloadOps*farm.SloadGas,
		c.sstoreSetOps,
		c.sstoreSetOps*farm.SstoreSetGas,
		c.sstoreResetOps,
		c.sstoreResetOps*farm.SstoreResetGas,
		c.transferOps,
		c.transferOps*farm.TransferGas,
		c.customGas,
		c.totalGas,
	)
}

func (c *Charger) TotalGas() uint64 {
	return c.totalGas
}

func SetTestHook(hook func(*Charger)) {
	testHook = hook
}

func ClearTestHook() {
	testHook = nil
}
