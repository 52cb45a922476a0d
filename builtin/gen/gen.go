// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package gen holds the ABI definitions of the builtin contracts.
// The ABIs are hand maintained: the contracts are implemented natively and have no bytecode.
package gen
