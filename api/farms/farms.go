// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package farms

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/tokenfarm/api/utils"
	"github.com/vechain/tokenfarm/builtin"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/state"
)

const maxStakersLimit = 1000

var errLimitExceeded = errors.Errorf("limit exceeds the maximum allowed value of %d", maxStakersLimit)

// Viewer gives access to the state of the block being packed.
type Viewer interface {
	View(fn func(st *state.State, blockNum uint32) error) error
}

type Farms struct {
	viewer Viewer
}

func New(viewer Viewer) *Farms {
	return &Farms{viewer}
}

func (f *Farms) getFarm(st *state.State, blockNum uint32) (*Farm, error) {
	ledger := builtin.TokenFarm.WithState(st)

	owner, err := ledger.Owner()
	if err != nil {
		return nil, err
	}
	lp, reward, err := ledger.Tokens()
	if err != nil {
		return nil, err
	}
	tvl, err := ledger.GetTotalValueLocked()
	if err != nil {
		return nil, err
	}
	count, err := ledger.GetStakersCount()
	if err != nil {
		return nil, err
	}
	rate, err := ledger.RewardsPerBlock()
	if err != nil {
		return nil, err
	}
	fee, err := ledger.WithdrawalFee()
	if err != nil {
		return nil, err
	}
	fees, err := ledger.CollectedFees()
	if err != nil {
		return nil, err
	}
	last, err := ledger.LastUpdateBlock()
	if err != nil {
		return nil, err
	}
	return &Farm{
		Address:         ledger.Address(),
		Owner:           owner,
		LPToken:         lp,
		DAPPToken:       reward,
		TotalStaked:     hexOrDecimal(tvl),
		StakersCount:    count,
		RewardsPerBlock: hexOrDecimal(rate),
		WithdrawalFee:   fee,
		FeeDenominator:  farm.FeeDenominator,
		CollectedFees:   hexOrDecimal(fees),
		LastUpdateBlock: last,
		BlockNumber:     blockNum,
	}, nil
}

func (f *Farms) handleGetFarm(w http.ResponseWriter, _ *http.Request) error {
	var result *Farm
	err := f.viewer.View(func(st *state.State, blockNum uint32) (err error) {
		result, err = f.getFarm(st, blockNum)
		return
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, result)
}

func (f *Farms) handleGetUser(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.ParseAddress("address", mux.Vars(req)["address"])
	if err != nil {
		return err
	}

	var result *User
	err = f.viewer.View(func(st *state.State, blockNum uint32) error {
		ledger := builtin.TokenFarm.WithState(st)
		info, err := ledger.GetUserInfo(addr, blockNum)
		if err != nil {
			return err
		}
		p, err := ledger.GetParticipant(addr)
		if err != nil {
			return err
		}
		result = &User{
			Address:        addr,
			StakingBalance: hexOrDecimal(info.StakingBalance),
			PendingRewards: hexOrDecimal(info.PendingRewards),
			Checkpoint:     p.Checkpoint,
			HasStaked:      info.HasStaked,
			IsStaking:      info.IsStaking,
			BlockNumber:    blockNum,
		}
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, result)
}

func (f *Farms) handleGetStakers(w http.ResponseWriter, req *http.Request) error {
	query := req.URL.Query()
	offset, err := utils.ParseUint("offset", query.Get("offset"), 0)
	if err != nil {
		return err
	}
	limit, err := utils.ParseUint("limit", query.Get("limit"), 100)
	if err != nil {
		return err
	}
	if limit > maxStakersLimit {
		return utils.Forbidden(errLimitExceeded)
	}

	result := &Stakers{Offset: offset}
	err = f.viewer.View(func(st *state.State, _ uint32) error {
		ledger := builtin.TokenFarm.WithState(st)
		total, err := ledger.GetStakersCount()
		if err != nil {
			return err
		}
		stakers, err := ledger.Stakers(offset, limit)
		if err != nil {
			return err
		}
		result.Total = total
		result.Stakers = stakers
		return nil
	})
	if err != nil {
		return err
	}
	if result.Stakers == nil {
		result.Stakers = []farm.Address{}
	}
	return utils.WriteJSON(w, result)
}

func (f *Farms) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /farm").
		HandlerFunc(utils.WrapHandlerFunc(f.handleGetFarm))
	sub.Path("/users/{address}").
		Methods(http.MethodGet).
		Name("GET /farm/users/{address}").
		HandlerFunc(utils.WrapHandlerFunc(f.handleGetUser))
	sub.Path("/stakers").
		Methods(http.MethodGet).
		Name("GET /farm/stakers").
		HandlerFunc(utils.WrapHandlerFunc(f.handleGetStakers))
}
