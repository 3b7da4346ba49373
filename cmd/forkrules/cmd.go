// Copyright 2014 The go-ethereum Authors
// This file is part of go-ethereum.
//
// go-ethereum is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ethereum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-ethereum. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/davecgh/go-spew/spew"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/fatih/color"
	"github.com/spf13/afero"
	"gopkg.in/urfave/cli.v1"

	"github.com/ethereumproject/forkrules/core"
	"github.com/ethereumproject/forkrules/core/fork"
	"github.com/ethereumproject/forkrules/core/types"
	"github.com/ethereumproject/forkrules/ethdb"
	"github.com/ethereumproject/forkrules/params"
)

var (
	forkColor   = color.New(color.FgGreen).SprintFunc()
	numberColor = color.New(color.FgCyan).SprintFunc()
	errorColor  = color.New(color.FgRed).SprintFunc()

	fs = afero.NewOsFs()
)

var (
	forksCommand = cli.Command{
		Action: forks,
		Name:   "forks",
		Usage:  "Print the fork schedule of the chain",
		Description: `
Lists every scheduled fork with its activation block, its constants and the
fork each of its rules was last overridden by.
`,
	}
	rewardCommand = cli.Command{
		Action:    reward,
		Name:      "reward",
		Usage:     "Compute the rewards of a block",
		ArgsUsage: "<number> [uncle number...]",
		Description: `
Prints the miner reward of the block with the given number and the reward of
each uncle included in it, in wei.
`,
	}
	difficultyCommand = cli.Command{
		Action:    difficulty,
		Name:      "difficulty",
		Usage:     "Compute the difficulty of the block following a parent",
		ArgsUsage: "<parent.json>",
		Flags:     []cli.Flag{TimeFlag},
	}
	validateReceiptCommand = cli.Command{
		Action:    validateReceipt,
		Name:      "validate-receipt",
		Usage:     "Validate an RLP encoded receipt",
		ArgsUsage: "<hex>",
		Flags:     []cli.Flag{NumberFlag},
	}
	importHeaderCommand = cli.Command{
		Action:    importHeaders,
		Name:      "import-header",
		Usage:     "Verify and store JSON encoded headers",
		ArgsUsage: "<header.json...>",
		Description: `
Headers are imported in order. The first header of an empty database must be
the genesis; every other header is verified against its stored parent under
the rules in effect at its number.
`,
	}
	nextHeaderCommand = cli.Command{
		Action: nextHeader,
		Name:   "next-header",
		Usage:  "Create the header following the stored head",
		Flags:  []cli.Flag{TimeFlag, GasLimitFlag, CoinbaseFlag, ExtraDataFlag},
	}
	dumpCommand = cli.Command{
		Action:    dump,
		Name:      "dump",
		Usage:     "Dump a stored header and its receipts",
		ArgsUsage: "[number]",
	}
)

func loadRegistry(ctx *cli.Context) (*fork.Registry, error) {
	config, err := params.LoadChainConfig(fs, ctx.GlobalString(ChainIdentityFlag.Name))
	if err != nil {
		return nil, err
	}
	return fork.NewChainRules(config)
}

func openStore(ctx *cli.Context) (*core.HeaderStore, ethdb.Database, error) {
	backend := ctx.GlobalString(DatabaseFlag.Name)
	path := filepath.Join(ctx.GlobalString(DataDirFlag.Name), "headers")
	if backend == ethdb.BackendBolt {
		path += ".db"
	}
	db, err := ethdb.Open(backend, path, ctx.GlobalInt(CacheFlag.Name), 16)
	if err != nil {
		return nil, nil, err
	}
	store, err := core.NewHeaderStore(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return store, db, nil
}

func readHeader(path string) (*types.Header, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	header := new(types.Header)
	if err := json.Unmarshal(data, header); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return header, nil
}

func uintArg(ctx *cli.Context, i int) (uint64, error) {
	s := ctx.Args().Get(i)
	n, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid block number %q", s)
	}
	return n, nil
}

func forks(ctx *cli.Context) error {
	r, err := loadRegistry(ctx)
	if err != nil {
		return err
	}
	for _, a := range r.Activations() {
		c := a.Rules.Constants()
		fmt.Printf("%s %s reward=%v bomb-delay=%d uncle-depth=%d status-receipts=%t\n",
			numberColor(fmt.Sprintf("%10d", a.Block)), forkColor(fmt.Sprintf("%-18s", a.Rules.Name())),
			c.BlockReward.ToBig(), c.BombDelay, c.MaxUncleDepth, c.StatusCodes != nil)
		for _, f := range fork.Fields() {
			fmt.Printf("%10s   %-18v <- %s\n", "", f, a.Rules.DefinedBy(f))
		}
	}
	return nil
}

func reward(ctx *cli.Context) error {
	if !ctx.Args().Present() {
		return errors.New("missing block number")
	}
	r, err := loadRegistry(ctx)
	if err != nil {
		return err
	}
	number, err := uintArg(ctx, 0)
	if err != nil {
		return err
	}
	header := &types.Header{Number: number, Difficulty: common.Big0}
	var uncles []*types.Header
	for i := 1; i < ctx.NArg(); i++ {
		n, err := uintArg(ctx, i)
		if err != nil {
			return err
		}
		// distinct uncles may share a number
		uncles = append(uncles, &types.Header{Number: n, Difficulty: common.Big0, Extra: []byte{byte(i)}})
	}
	rules := r.At(number)
	rewards, err := rules.Rewards(header, uncles)
	if err != nil {
		return err
	}
	fmt.Printf("block %s (%s)\n", numberColor(number), forkColor(rules.Name()))
	fmt.Printf("miner  %v\n", rewards.Miner.ToBig())
	for i, u := range rewards.Uncles {
		fmt.Printf("uncle  #%d %v\n", uncles[i].Number, u.ToBig())
	}
	return nil
}

func difficulty(ctx *cli.Context) error {
	if !ctx.Args().Present() {
		return errors.New("missing parent header file")
	}
	r, err := loadRegistry(ctx)
	if err != nil {
		return err
	}
	parent, err := readHeader(ctx.Args().First())
	if err != nil {
		return err
	}
	t := ctx.Uint64(TimeFlag.Name)
	if t == 0 {
		t = parent.Time + 1
	}
	rules := r.At(parent.Number + 1)
	fmt.Printf("%v (%s)\n", rules.Difficulty(parent, t), forkColor(rules.Name()))
	return nil
}

func validateReceipt(ctx *cli.Context) error {
	if !ctx.Args().Present() {
		return errors.New("missing receipt")
	}
	r, err := loadRegistry(ctx)
	if err != nil {
		return err
	}
	enc, err := hexutil.Decode(ctx.Args().First())
	if err != nil {
		return err
	}
	receipt := new(types.Receipt)
	if err := rlp.DecodeBytes(enc, receipt); err != nil {
		return err
	}
	rules := r.At(ctx.Uint64(NumberFlag.Name))
	if err := rules.ValidateReceipt(receipt); err != nil {
		return fmt.Errorf("%s: %w", rules.Name(), err)
	}
	fmt.Printf("valid under %s: %v\n", forkColor(rules.Name()), receipt)
	return nil
}

func importHeaders(ctx *cli.Context) error {
	if !ctx.Args().Present() {
		return errors.New("missing header files")
	}
	r, err := loadRegistry(ctx)
	if err != nil {
		return err
	}
	store, db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, path := range ctx.Args() {
		header, err := readHeader(path)
		if err != nil {
			return err
		}
		if header.Number > 0 {
			parent := store.GetHeader(header.ParentHash)
			if parent == nil {
				return fmt.Errorf("%s: %w", path, core.ErrUnknownAncestor)
			}
			if err := r.VerifyHeader(header, parent); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
		} else if store.CurrentHeader() != nil {
			return fmt.Errorf("%s: database already holds a genesis", path)
		}
		if err := store.InsertHeader(header); err != nil {
			return err
		}
		fmt.Printf("imported #%s %x (%s)\n", numberColor(header.Number), header.Hash(), forkColor(r.ForHeader(header).Name()))
	}
	return nil
}

func nextHeader(ctx *cli.Context) error {
	r, err := loadRegistry(ctx)
	if err != nil {
		return err
	}
	store, db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	parent := store.CurrentHeader()
	if parent == nil {
		return errors.New("empty database, import a genesis header first")
	}
	opts := core.HeaderParams{
		Time:     ctx.Uint64(TimeFlag.Name),
		GasLimit: ctx.Uint64(GasLimitFlag.Name),
	}
	if s := ctx.String(CoinbaseFlag.Name); s != "" {
		if !common.IsHexAddress(s) {
			return fmt.Errorf("invalid coinbase %q", s)
		}
		opts.Coinbase = common.HexToAddress(s)
	}
	if s := ctx.String(ExtraDataFlag.Name); s != "" {
		opts.Extra = []byte(s)
	}
	header, err := r.At(parent.Number+1).CreateHeader(parent, opts)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(header, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func dump(ctx *cli.Context) error {
	store, db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	header := store.CurrentHeader()
	if ctx.Args().Present() {
		number, err := uintArg(ctx, 0)
		if err != nil {
			return err
		}
		header = store.GetHeaderByNumber(number)
	}
	if header == nil {
		return errors.New("header not found")
	}
	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}
	cfg.Dump(header)
	if receipts := store.GetReceipts(header.Hash()); len(receipts) > 0 {
		cfg.Dump(receipts)
	}
	return nil
}
