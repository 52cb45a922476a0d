// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/tokenfarm/api/utils"
	"github.com/vechain/tokenfarm/chain"
	"github.com/vechain/tokenfarm/farm"
)

// Info describes the running node.
type Info struct {
	Name      string       `json:"name"`
	GenesisID farm.Bytes32 `json:"genesisID"`
	Version   string       `json:"version"`
}

// Block for json marshal.
type Block struct {
	Number       uint32         `json:"number"`
	ID           farm.Bytes32   `json:"id"`
	ParentID     farm.Bytes32   `json:"parentID"`
	Timestamp    uint64         `json:"timestamp"`
	StateHash    farm.Bytes32   `json:"stateHash"`
	Transactions []farm.Bytes32 `json:"transactions"`
}

func convertBlock(b *chain.Block) *Block {
	txs := b.TxIDs()
	if txs == nil {
		txs = []farm.Bytes32{}
	}
	return &Block{
		Number:       b.Number(),
		ID:           b.ID(),
		ParentID:     b.ParentID(),
		Timestamp:    b.Timestamp(),
		StateHash:    b.StateHash(),
		Transactions: txs,
	}
}

type Node struct {
	repo *chain.Repository
	info Info
}

func New(repo *chain.Repository, info Info) *Node {
	return &Node{
		repo,
		info,
	}
}

func (n *Node) handleNodeInfo(w http.ResponseWriter, _ *http.Request) error {
	return utils.WriteJSON(w, &n.info)
}

func (n *Node) handleBestBlock(w http.ResponseWriter, _ *http.Request) error {
	return utils.WriteJSON(w, convertBlock(n.repo.BestBlock()))
}

func (n *Node) handleGetBlock(w http.ResponseWriter, req *http.Request) error {
	num, err := strconv.ParseUint(mux.Vars(req)["number"], 10, 32)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "number"))
	}
	b, err := n.repo.GetBlock(uint32(num))
	if err != nil {
		if n.repo.IsNotFound(err) {
			return utils.WriteJSON(w, nil)
		}
		return err
	}
	return utils.WriteJSON(w, convertBlock(b))
}

func (n *Node) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/info").
		Methods(http.MethodGet).
		Name("GET /node/info").
		HandlerFunc(utils.WrapHandlerFunc(n.handleNodeInfo))
	sub.Path("/block").
		Methods(http.MethodGet).
		Name("GET /node/block").
		HandlerFunc(utils.WrapHandlerFunc(n.handleBestBlock))
	sub.Path("/blocks/{number}").
		Methods(http.MethodGet).
		Name("GET /node/blocks/{number}").
		HandlerFunc(utils.WrapHandlerFunc(n.handleGetBlock))
}
