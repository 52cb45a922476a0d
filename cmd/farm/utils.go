// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/tokenfarm/chain"
	"github.com/vechain/tokenfarm/genesis"
	"github.com/vechain/tokenfarm/log"
	"github.com/vechain/tokenfarm/logdb"
	"github.com/vechain/tokenfarm/lvldb"
	"github.com/vechain/tokenfarm/metrics"
	"github.com/vechain/tokenfarm/tx"
)

func initLogger(ctx *cli.Context) {
	level := log.VerbosityLevel(ctx.Int(verbosityFlag.Name))

	var handler slog.Handler
	if ctx.Bool(jsonLogsFlag.Name) {
		handler = log.NewJSONHandler(os.Stdout, level)
	} else {
		useColor := (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
		handler = log.NewTerminalHandler(os.Stderr, level, useColor)
	}
	log.SetDefault(handler)
}

func defaultDataDir() string {
	// Try to place the data folder in the user's home dir
	if home := homeDir(); home != "" {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, "Library", "Application Support", "org.vechain.tokenfarm")
		} else if runtime.GOOS == "windows" {
			return filepath.Join(home, "AppData", "Roaming", "org.vechain.tokenfarm")
		}
		return filepath.Join(home, ".org.vechain.tokenfarm")
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		logger.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

func selectGenesis(ctx *cli.Context) (*genesis.Genesis, error) {
	path := ctx.String(configFlag.Name)
	if path == "" {
		return genesis.NewDevnet(), nil
	}
	cfg, err := genesis.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return genesis.NewCustom(cfg, "custom")
}

func makeInstanceDir(ctx *cli.Context, gene *genesis.Genesis) (string, error) {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		return "", fmt.Errorf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name)
	}
	instanceDir := filepath.Join(dataDir, fmt.Sprintf("instance-%x", gene.ID().Bytes()[24:]))
	if err := os.MkdirAll(instanceDir, 0o700); err != nil {
		return "", errors.Wrapf(err, "create instance dir [%v]", instanceDir)
	}
	return instanceDir, nil
}

// openDatabases opens the main and log databases, in memory unless --persist is set.
func openDatabases(ctx *cli.Context, gene *genesis.Genesis) (*lvldb.LevelDB, *logdb.LogDB, string, error) {
	if !ctx.Bool(persistFlag.Name) {
		mainDB, err := lvldb.NewMem()
		if err != nil {
			return nil, nil, "", errors.Wrap(err, "open main database")
		}
		logDB, err := logdb.NewMem()
		if err != nil {
			mainDB.Close()
			return nil, nil, "", errors.Wrap(err, "open log database")
		}
		return mainDB, logDB, "Memory", nil
	}

	instanceDir, err := makeInstanceDir(ctx, gene)
	if err != nil {
		return nil, nil, "", err
	}
	mainDB, err := lvldb.New(filepath.Join(instanceDir, "main.db"), lvldb.Options{
		CacheSize:              128,
		OpenFilesCacheCapacity: 64,
	})
	if err != nil {
		return nil, nil, "", errors.Wrap(err, "open main database")
	}
	logDB, err := logdb.New(filepath.Join(instanceDir, "logs.db"))
	if err != nil {
		mainDB.Close()
		return nil, nil, "", errors.Wrap(err, "open log database")
	}
	return mainDB, logDB, instanceDir, nil
}

// initChain deploys the genesis if needed and brings the log db up to the best block.
func initChain(gene *genesis.Genesis, mainDB *lvldb.LevelDB, logDB *logdb.LogDB) (*chain.Repository, error) {
	repo, genesisEvents, err := genesis.Setup(mainDB, gene)
	if err != nil {
		return nil, errors.WithMessage(err, "initialize farm chain")
	}

	newest, err := logDB.NewestBlockID()
	if err != nil {
		return nil, errors.WithMessage(err, "read log database")
	}
	if newest.IsZero() {
		w := logDB.NewWriter()
		// genesis deployment events
		if err := w.Write(repo.GenesisBlock(), tx.Receipts{{Outputs: []*tx.Output{{Events: genesisEvents}}}}); err != nil {
			return nil, err
		}
		if err := w.Commit(); err != nil {
			return nil, errors.WithMessage(err, "write genesis logs")
		}
		newest = repo.GenesisBlock().ID()
	}
	if err := syncLogDB(repo, logDB, chain.Number(newest)); err != nil {
		return nil, errors.WithMessage(err, "sync log database")
	}
	return repo, nil
}

// syncLogDB writes logs of the blocks after synced, up to the best block.
// The log db is written after the block, so it can only lag behind.
func syncLogDB(repo *chain.Repository, logDB *logdb.LogDB, synced uint32) error {
	best := repo.BestBlock().Number()
	if synced >= best {
		return nil
	}
	logger.Info("syncing log database", "from", synced+1, "to", best)

	w := logDB.NewWriter()
	if err := w.Truncate(synced + 1); err != nil {
		return err
	}
	for n := synced + 1; n <= best; n++ {
		b, err := repo.GetBlock(n)
		if err != nil {
			return err
		}
		receipts, err := repo.GetBlockReceipts(n)
		if err != nil {
			return err
		}
		if err := w.Write(b, receipts); err != nil {
			return err
		}
		if w.UncommittedCount() > 2048 {
			if err := w.Commit(); err != nil {
				return err
			}
		}
	}
	return w.Commit()
}

// serveHTTP starts serving handler on addr in g, the server is closed when ctx is done.
func serveHTTP(ctx context.Context, g *errgroup.Group, addr string, handler http.Handler) (string, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", errors.Wrapf(err, "listen addr [%v]", addr)
	}
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}

	g.Go(func() error {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		return srv.Close()
	})
	return "http://" + listener.Addr().String() + "/", nil
}

func metricsHandler() http.Handler {
	router := mux.NewRouter()
	router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())
	return handlers.CompressHandler(router)
}

func printStartupMessage(
	gene *genesis.Genesis,
	repo *chain.Repository,
	dataDir string,
	apiURL string,
	metricsURL string,
) {
	tableHead := `
┌────────────────────────────────────────────┬────────────────────────────────────────────────────────────────────┐
│                   Address                  │                             Private Key                            │`
	tableContent := `
├────────────────────────────────────────────┼────────────────────────────────────────────────────────────────────┤
│ %v │ %v │`
	tableEnd := `
└────────────────────────────────────────────┴────────────────────────────────────────────────────────────────────┘`

	bestBlock := repo.BestBlock()

	info := fmt.Sprintf(`Starting Farm solo %v
    Network     [ %v %v ]
    Best block  [ %v #%v @%v ]
    Data dir    [ %v ]
    API portal  [ %v ]
    Metrics     [ %v ]`,
		fullVersion(),
		gene.ID(), gene.Name(),
		bestBlock.ID(), bestBlock.Number(), time.Unix(int64(bestBlock.Timestamp()), 0),
		dataDir,
		apiURL,
		func() string {
			if metricsURL == "" {
				return "disabled"
			}
			return metricsURL
		}(),
	)

	info += tableHead
	for _, a := range genesis.DevAccounts() {
		info += fmt.Sprintf(tableContent,
			a.Address,
			fmt.Sprintf("%x", a.PrivateKey.D.FillBytes(make([]byte, 32))),
		)
	}
	info += tableEnd + "\r\n"

	fmt.Print(info)
}
