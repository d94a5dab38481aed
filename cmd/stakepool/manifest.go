// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"

	"github.com/vechain/stakepool/authority"
	"github.com/vechain/stakepool/kv"
	"github.com/vechain/stakepool/log"
	"github.com/vechain/stakepool/pool"
	"github.com/vechain/stakepool/stakepool"
	"github.com/vechain/stakepool/token"
)

// poolManifest declares the pool a daemon instance serves: the ledger
// addresses, the phase duration and the bootstrap entries applied when
// the store is still empty.
type poolManifest struct {
	Name          string
	Pool          stakepool.Address
	PhaseDuration uint64
	Custodian     stakepool.Address
	RewardToken   stakepool.Address
	Authority     stakepool.Address
	Operators     []manifestOperator
	Mints         []manifestMint
}

type manifestOperator struct {
	Address  stakepool.Address
	Identity stakepool.Bytes32
}

type manifestMint struct {
	Token  stakepool.Address
	Holder stakepool.Address
	Amount *big.Int
}

// rawManifest is the yaml form, addresses and amounts kept as strings
// until validated.
type rawManifest struct {
	Name          string        `yaml:"name"`
	Pool          string        `yaml:"pool"`
	PhaseDuration uint64        `yaml:"phaseDuration"`
	Custodian     string        `yaml:"custodianToken"`
	RewardToken   string        `yaml:"rewardToken"`
	Authority     string        `yaml:"authority"`
	Operators     []rawOperator `yaml:"operators"`
	Mints         []rawMint     `yaml:"mints"`
}

type rawOperator struct {
	Address  string `yaml:"address"`
	Identity string `yaml:"identity"`
}

type rawMint struct {
	Token  string `yaml:"token"`
	Holder string `yaml:"holder"`
	Amount string `yaml:"amount"`
}

func (raw *rawManifest) normalize() (*poolManifest, error) {
	if raw.PhaseDuration < stakepool.MinPhaseDuration {
		return nil, errors.Errorf("phaseDuration must be at least %d seconds", stakepool.MinPhaseDuration)
	}
	m := &poolManifest{
		Name:          raw.Name,
		PhaseDuration: raw.PhaseDuration,
	}
	if m.Name == "" {
		m.Name = "custom"
	}

	for _, field := range []struct {
		name  string
		value string
		dest  *stakepool.Address
	}{
		{"pool", raw.Pool, &m.Pool},
		{"custodianToken", raw.Custodian, &m.Custodian},
		{"rewardToken", raw.RewardToken, &m.RewardToken},
		{"authority", raw.Authority, &m.Authority},
	} {
		addr, err := stakepool.ParseAddress(field.value)
		if err != nil {
			return nil, errors.Wrap(err, field.name)
		}
		*field.dest = *addr
	}
	if m.Custodian == m.RewardToken {
		return nil, errors.New("custodianToken and rewardToken must differ")
	}

	for i, op := range raw.Operators {
		addr, err := stakepool.ParseAddress(op.Address)
		if err != nil {
			return nil, errors.Wrapf(err, "operators[%d].address", i)
		}
		// identity defaults to the address hash
		identity := stakepool.Blake2b(addr.Bytes())
		if op.Identity != "" {
			if identity, err = stakepool.ParseBytes32(op.Identity); err != nil {
				return nil, errors.Wrapf(err, "operators[%d].identity", i)
			}
		}
		m.Operators = append(m.Operators, manifestOperator{Address: *addr, Identity: identity})
	}

	for i, mint := range raw.Mints {
		tokenAddr, err := stakepool.ParseAddress(mint.Token)
		if err != nil {
			return nil, errors.Wrapf(err, "mints[%d].token", i)
		}
		if *tokenAddr != m.Custodian && *tokenAddr != m.RewardToken {
			return nil, errors.Errorf("mints[%d].token: unknown token %v", i, tokenAddr)
		}
		holder, err := stakepool.ParseAddress(mint.Holder)
		if err != nil {
			return nil, errors.Wrapf(err, "mints[%d].holder", i)
		}
		amount, ok := math.ParseBig256(mint.Amount)
		if !ok || amount.Sign() <= 0 {
			return nil, errors.Errorf("mints[%d].amount: invalid amount %q", i, mint.Amount)
		}
		m.Mints = append(m.Mints, manifestMint{Token: *tokenAddr, Holder: *holder, Amount: amount})
	}
	return m, nil
}

func loadManifest(ctx *cli.Context) *poolManifest {
	path := ctx.String(manifestFlag.Name)
	if path == "" {
		cli.ShowAppHelp(ctx)
		fmt.Println("manifest flag not specified")
		os.Exit(1)
	}

	file, err := os.Open(path)
	if err != nil {
		fatal(fmt.Sprintf("open manifest file: %v", err))
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw rawManifest
	if err := decoder.Decode(&raw); err != nil {
		fatal(fmt.Sprintf("decode manifest file: %v", err))
	}
	manifest, err := raw.normalize()
	if err != nil {
		fatal(fmt.Sprintf("invalid manifest: %v", err))
	}
	return manifest
}

// bootstrapLedger applies the manifest to an empty store. A store that
// already holds an initialized ledger is verified against the manifest
// instead, a mismatch means the operator pointed the daemon at the
// wrong instance.
func bootstrapLedger(manifest *poolManifest, store kv.Store) {
	st := pool.OpenState(store)
	params, err := pool.ReadParams(manifest.Pool, st)
	if err != nil {
		fatal(fmt.Sprintf("read pool params: %v", err))
	}
	if params.PhaseDuration != 0 {
		if params.PhaseDuration != manifest.PhaseDuration ||
			params.Custodian != manifest.Custodian ||
			params.RewardToken != manifest.RewardToken ||
			params.Authority != manifest.Authority {
			fatal("manifest does not match the initialized ledger")
		}
		return
	}

	if err := pool.Initialize(manifest.Pool, st, pool.Params{
		PhaseDuration: manifest.PhaseDuration,
		Custodian:     manifest.Custodian,
		RewardToken:   manifest.RewardToken,
		Authority:     manifest.Authority,
	}); err != nil {
		fatal(fmt.Sprintf("initialize pool ledger: %v", err))
	}

	auth := authority.New(manifest.Authority, st)
	for _, op := range manifest.Operators {
		added, err := auth.Add(op.Address, op.Identity)
		if err != nil {
			fatal(fmt.Sprintf("register operator [%v]: %v", op.Address, err))
		}
		if !added {
			fatal(fmt.Sprintf("register operator [%v]: duplicate", op.Address))
		}
	}
	for _, mint := range manifest.Mints {
		if err := token.New(mint.Token, st).Mint(mint.Holder, mint.Amount); err != nil {
			fatal(fmt.Sprintf("mint [%v] to [%v]: %v", mint.Token, mint.Holder, err))
		}
	}

	if err := st.Stage().Commit(); err != nil {
		fatal(fmt.Sprintf("commit pool bootstrap: %v", err))
	}
	log.Info("pool ledger initialized",
		"pool", manifest.Pool,
		"operators", len(manifest.Operators),
		"mints", len(manifest.Mints))
}
