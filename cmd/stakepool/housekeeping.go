// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"time"

	"github.com/beevik/ntp"
	"github.com/ethereum/go-ethereum/common"

	"github.com/vechain/stakepool/health"
	"github.com/vechain/stakepool/log"
	"github.com/vechain/stakepool/pool"
)

// phase boundaries are computed from the wall clock, so drift beyond
// this is worth an operator's attention
const clockOffsetTolerance = time.Minute

func houseKeeping(ctx context.Context, svc *pool.Service, tracker *health.Health) {
	log.Debug("enter house keeping")
	defer log.Debug("leave house keeping")

	pulseTicker := time.NewTicker(time.Second)
	cacheStatsTicker := time.NewTicker(20 * time.Second)
	clockSyncTicker := time.NewTicker(10 * time.Minute)
	defer pulseTicker.Stop()
	defer cacheStatsTicker.Stop()
	defer clockSyncTicker.Stop()

	observe := func() {
		info, err := svc.RewardInfo(0)
		if err != nil {
			log.Warn("health probe failed", "err", err)
			return
		}
		tracker.Observe(info.CurrentPhase, info.ProjectedPhase)
	}
	observe()

	for {
		select {
		case <-ctx.Done():
			return
		case <-pulseTicker.C:
			observe()
		case <-cacheStatsTicker.C:
			svc.ReportCacheStats()
		case <-clockSyncTicker.C:
			go checkClockOffset()
		}
	}
}

func checkClockOffset() {
	resp, err := ntp.Query("pool.ntp.org")
	if err != nil {
		log.Debug("failed to access NTP", "err", err)
		return
	}
	if resp.ClockOffset > clockOffsetTolerance {
		log.Warn("clock offset detected", "offset", common.PrettyDuration(resp.ClockOffset))
	}
}
