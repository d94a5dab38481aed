// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// stakepool runs a phase indexed staking pool: it keeps the stake
// ledger, settles reward distributions phase by phase and serves the
// REST and admin APIs.
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/stakepool/api"
	"github.com/vechain/stakepool/co"
	"github.com/vechain/stakepool/eventdb"
	"github.com/vechain/stakepool/health"
	"github.com/vechain/stakepool/log"
	"github.com/vechain/stakepool/metrics"
	"github.com/vechain/stakepool/pool"
)

var (
	version   string
	gitCommit string
	gitTag    string
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
		Name:      "Stakepool",
		Usage:     "Phase indexed staking reward pool",
		Copyright: "2026 VeChain Foundation <https://vechain.org/>",
		Flags: []cli.Flag{
			manifestFlag,
			dataDirFlag,
			cacheFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiTimeoutFlag,
			apiEventsLimitFlag,
			enableAPILogsFlag,
			verbosityFlag,
			jsonLogsFlag,
			pprofFlag,
			skipEventsFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			enableAdminFlag,
			adminAddrFlag,
		},
		Action: defaultAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()
	defer func() { log.Info("exited") }()

	lvl, err := readIntFromUInt64Flag(ctx.Uint64(verbosityFlag.Name))
	if err != nil {
		return errors.Wrap(err, "parse verbosity flag")
	}
	logLevel := initLogger(lvl, ctx.Bool(jsonLogsFlag.Name))

	// enable metrics as soon as possible
	metricsOn := ctx.Bool(enableMetricsFlag.Name)
	if metricsOn {
		metrics.InitializePrometheusMetrics()
		url, closeFunc, err := api.StartMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return errors.Wrap(err, "start metrics server")
		}
		log.Info("metrics server started", "url", url)
		defer func() { log.Info("stopping metrics server..."); closeFunc() }()
	}

	manifest := loadManifest(ctx)
	instanceDir := makeInstanceDir(ctx, manifest.Pool)

	mainDB := openMainDB(ctx, instanceDir)
	defer func() { log.Info("closing ledger database..."); mainDB.Close() }()

	bootstrapLedger(manifest, mainDB)

	skipEvents := ctx.Bool(skipEventsFlag.Name)
	var eventDB *eventdb.EventDB
	var recorder pool.ActivityRecorder
	if !skipEvents {
		eventDB = openEventDB(ctx, instanceDir)
		defer func() { log.Info("closing event database..."); eventDB.Close() }()
		recorder = eventDB
	}

	svc, err := pool.NewService(mainDB, manifest.Pool, recorder)
	if err != nil {
		return errors.Wrap(err, "open pool service")
	}

	tracker := health.New()
	tracker.LedgerStatus(true)

	apiHandler, apiCloser := api.New(svc, eventDB, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		EventsLimit:     ctx.Uint64(apiEventsLimitFlag.Name),
		SkipEvents:      skipEvents,
		PprofOn:         ctx.Bool(pprofFlag.Name),
		EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
		EnableMetrics:   metricsOn,
	})
	defer func() { log.Info("closing API..."); apiCloser() }()

	apiURL, srvCloser := startAPIServer(ctx, apiHandler)
	defer func() { log.Info("stopping API server..."); srvCloser() }()

	if ctx.Bool(enableAdminFlag.Name) {
		url, closeFunc, err := api.StartAdminServer(
			ctx.String(adminAddrFlag.Name), logLevel, tracker, svc, metricsOn)
		if err != nil {
			return errors.Wrap(err, "start admin server")
		}
		log.Info("admin server started", "url", url)
		defer func() { log.Info("stopping admin server..."); closeFunc() }()
	}

	printStartupMessage(manifest, svc, instanceDir, apiURL)

	var goes co.Goes
	goes.Go(func() { houseKeeping(exitSignal, svc, tracker) })
	defer goes.Wait()

	<-exitSignal.Done()
	return nil
}
