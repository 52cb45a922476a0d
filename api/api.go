// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/tokenfarm/api/events"
	"github.com/vechain/tokenfarm/api/farms"
	"github.com/vechain/tokenfarm/api/node"
	"github.com/vechain/tokenfarm/api/subscriptions"
	"github.com/vechain/tokenfarm/api/tokens"
	"github.com/vechain/tokenfarm/api/transactions"
	"github.com/vechain/tokenfarm/chain"
	"github.com/vechain/tokenfarm/log"
	"github.com/vechain/tokenfarm/logdb"
)

var logger = log.WithContext("pkg", "api")

// Backend reads and writes the block being packed.
type Backend interface {
	farms.Viewer
	transactions.Executor
}

type Options struct {
	AllowedOrigins  string
	BacktraceLimit  uint32
	CallGasLimit    uint64
	LogsLimit       uint64
	SkipLogs        bool
	EnableReqLogger bool
	EnableMetrics   bool
}

// New return api router
func New(
	repo *chain.Repository,
	logDB *logdb.LogDB,
	backend Backend,
	info node.Info,
	opts Options,
) (http.HandlerFunc, func()) {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	farms.New(backend).
		Mount(router, "/farm")
	tokens.New(backend).
		Mount(router, "/tokens")
	transactions.New(repo, backend, opts.CallGasLimit).
		Mount(router, "/transactions")
	if !opts.SkipLogs {
		events.New(repo, logDB, opts.LogsLimit).
			Mount(router, "/logs/event")
	}
	node.New(repo, info).
		Mount(router, "/node")
	subs := subscriptions.New(repo, origins, opts.BacktraceLimit)
	subs.Mount(router, "/subscriptions")

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)

	if opts.EnableReqLogger {
		handler = RequestLoggerHandler(handler, logger)
	}

	return handler.ServeHTTP, subs.Close // subscriptions handles hijacked conns, which need to be closed
}
