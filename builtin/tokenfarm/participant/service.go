// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package participant

import (
	"github.com/pkg/errors"

	"github.com/vechain/tokenfarm/builtin/solidity"
	"github.com/vechain/tokenfarm/farm"
)

var slotParticipants = farm.Slot("users")

// Service stores participant records keyed by address.
type Service struct {
	records *solidity.Mapping[farm.Address, *Participant]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		records: solidity.NewMapping[farm.Address, *Participant](sctx, slotParticipants),
	}
}

// Get returns the record of addr. Unknown addresses get a zero record.
func (s *Service) Get(addr farm.Address) (*Participant, error) {
	p, err := s.records.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get participant")
	}
	return p.normalize(), nil
}

// Set writes the record of addr.
func (s *Service) Set(addr farm.Address, p *Participant, isNew bool) error {
	if err := s.records.Set(addr, p, isNew); err != nil {
		return errors.Wrap(err, "failed to set participant")
	}
	return nil
}
