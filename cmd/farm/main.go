// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/tokenfarm/api"
	"github.com/vechain/tokenfarm/api/node"
	"github.com/vechain/tokenfarm/cmd/farm/solo"
	"github.com/vechain/tokenfarm/log"
	"github.com/vechain/tokenfarm/metrics"
	"github.com/vechain/tokenfarm/packer"
	"github.com/vechain/tokenfarm/state"
)

var (
	version   string
	gitCommit string
	gitTag    string
	logger    = log.WithContext("pkg", "farm")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "Farm",
		Usage:     "LP staking reward farm, running as a solo node",
		Copyright: "2025 VeChain Foundation <https://vechain.org/>",
		Flags: []cli.Flag{
			dataDirFlag,
			persistFlag,
			configFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiCallGasLimitFlag,
			apiBacktraceLimitFlag,
			apiLogsLimitFlag,
			enableAPILogsFlag,
			verbosityFlag,
			jsonLogsFlag,
			blockIntervalFlag,
			onDemandFlag,
			gasLimitFlag,
			skipLogsFlag,
			enableMetricsFlag,
			metricsAddrFlag,
		},
		Action: soloAction,
		Commands: []cli.Command{
			{
				Name:  "inspect",
				Usage: "print the farm state at the best block",
				Flags: []cli.Flag{
					dataDirFlag,
					persistFlag,
					configFlag,
					verbosityFlag,
					jsonLogsFlag,
					userFlag,
					rawFlag,
				},
				Action: inspectAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func soloAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()
	defer func() { logger.Info("exited") }()

	initLogger(ctx)
	// meters are created lazily, prometheus must be installed before the first one
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	gene, err := selectGenesis(ctx)
	if err != nil {
		return err
	}
	mainDB, logDB, instanceDir, err := openDatabases(ctx, gene)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing main database..."); mainDB.Close() }()
	defer func() { logger.Info("closing log database..."); logDB.Close() }()

	repo, err := initChain(gene, mainDB, logDB)
	if err != nil {
		return err
	}

	stater := state.NewStater(mainDB)
	skipLogs := ctx.Bool(skipLogsFlag.Name)
	soloNode := solo.New(repo, packer.New(repo, stater, ctx.Uint64(gasLimitFlag.Name)), logDB, solo.Options{
		BlockInterval: ctx.Uint64(blockIntervalFlag.Name),
		SkipLogs:      skipLogs,
		OnDemand:      ctx.Bool(onDemandFlag.Name),
	})

	apiHandler, apiCloser := api.New(
		repo,
		logDB,
		soloNode,
		node.Info{
			Name:      gene.Name(),
			GenesisID: gene.ID(),
			Version:   fullVersion(),
		},
		api.Options{
			AllowedOrigins:  ctx.String(apiCorsFlag.Name),
			BacktraceLimit:  uint32(ctx.Uint64(apiBacktraceLimitFlag.Name)),
			CallGasLimit:    ctx.Uint64(apiCallGasLimitFlag.Name),
			LogsLimit:       ctx.Uint64(apiLogsLimitFlag.Name),
			SkipLogs:        skipLogs,
			EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
			EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
		},
	)
	defer func() { logger.Info("stopping API server..."); apiCloser() }()

	g, gctx := errgroup.WithContext(exitSignal)

	apiURL, err := serveHTTP(gctx, g, ctx.String(apiAddrFlag.Name), apiHandler)
	if err != nil {
		return errors.WithMessage(err, "start API server")
	}
	metricsURL := ""
	if ctx.Bool(enableMetricsFlag.Name) {
		if metricsURL, err = serveHTTP(gctx, g, ctx.String(metricsAddrFlag.Name), metricsHandler()); err != nil {
			return errors.WithMessage(err, "start metrics server")
		}
		metricsURL += "metrics"
	}

	printStartupMessage(gene, repo, instanceDir, apiURL, metricsURL)

	g.Go(func() error {
		return soloNode.Run(gctx)
	})
	return g.Wait()
}
