// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transactions

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/tokenfarm/api/utils"
	"github.com/vechain/tokenfarm/builtin/reverts"
	"github.com/vechain/tokenfarm/builtin/tokenfarm"
	"github.com/vechain/tokenfarm/chain"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/packer"
	"github.com/vechain/tokenfarm/runtime"
	"github.com/vechain/tokenfarm/tx"
)

// Executor executes transactions in the block being packed.
type Executor interface {
	Execute(trx *tx.Transaction) (*tx.Receipt, error)
	Call(clause *tx.Clause, caller farm.Address, gas uint64) (*runtime.Output, error)
}

type Transactions struct {
	repo     *chain.Repository
	executor Executor
	gasLimit uint64
}

// New creates the transactions API, gasLimit caps the gas of each request.
func New(repo *chain.Repository, executor Executor, gasLimit uint64) *Transactions {
	if gasLimit == 0 {
		gasLimit = farm.InitialGasLimit
	}
	return &Transactions{
		repo,
		executor,
		gasLimit,
	}
}

func (t *Transactions) gas(requested uint64) (uint64, error) {
	if requested == 0 {
		return t.gasLimit, nil
	}
	if requested > t.gasLimit {
		return 0, utils.Forbidden(fmt.Errorf("gas: exceeds limit %d", t.gasLimit))
	}
	return requested, nil
}

func (t *Transactions) handleSendTransaction(w http.ResponseWriter, req *http.Request) error {
	var body Transaction
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	gas, err := t.gas(body.Gas)
	if err != nil {
		return err
	}
	nonce := body.Nonce
	if nonce == 0 {
		nonce = uint64(time.Now().UnixNano())
	}

	builder := tx.NewBuilder(body.Caller).Gas(gas).Nonce(nonce)
	for i, c := range body.Clauses {
		if c == nil {
			return utils.BadRequest(fmt.Errorf("clauses[%d]: null not allowed", i))
		}
		clause, err := c.convert()
		if err != nil {
			return utils.BadRequest(errors.WithMessagef(err, "clauses[%d]", i))
		}
		builder.Clause(clause)
	}

	receipt, err := t.executor.Execute(builder.Build())
	if err != nil {
		if packer.IsBadTx(err) || packer.IsKnownTx(err) {
			return utils.BadRequest(err)
		}
		return err
	}
	metricTxCount().AddWithLabel(1, map[string]string{"reverted": fmt.Sprint(receipt.Reverted)})
	return utils.WriteJSON(w, convertReceipt(receipt))
}

func (t *Transactions) handleCall(w http.ResponseWriter, req *http.Request) error {
	var body CallData
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	clause, err := body.convert()
	if err != nil {
		return utils.BadRequest(err)
	}
	gas, err := t.gas(body.Gas)
	if err != nil {
		return err
	}

	output, err := t.executor.Call(clause, body.Caller, gas)
	if err != nil {
		return err
	}
	if output.VMErr != nil {
		return vmError(output.VMErr)
	}
	return utils.WriteJSON(w, &CallResult{
		Data:    output.Data,
		Events:  convertEvents(output.Events),
		GasUsed: gas - output.LeftOverGas,
	})
}

// vmError maps an aborted execution to a client error.
func vmError(err error) error {
	if errors.Is(err, tokenfarm.ErrUnauthorized) {
		return utils.Forbidden(err)
	}
	if reason, ok := reverts.Reason(err); ok {
		return utils.BadRequest(errors.New(reason))
	}
	return utils.BadRequest(err)
}

func (t *Transactions) handleGetReceipt(w http.ResponseWriter, req *http.Request) error {
	id, err := farm.ParseBytes32(mux.Vars(req)["id"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "id"))
	}
	receipt, err := t.repo.GetReceipt(id)
	if err != nil {
		if t.repo.IsNotFound(err) {
			return utils.WriteJSON(w, nil)
		}
		return err
	}
	return utils.WriteJSON(w, convertReceipt(receipt))
}

func (t *Transactions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodPost).
		Name("POST /transactions").
		HandlerFunc(utils.WrapHandlerFunc(t.handleSendTransaction))
	sub.Path("/call").
		Methods(http.MethodPost).
		Name("POST /transactions/call").
		HandlerFunc(utils.WrapHandlerFunc(t.handleCall))
	sub.Path("/{id}/receipt").
		Methods(http.MethodGet).
		Name("GET /transactions/{id}/receipt").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetReceipt))
}
