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
	"gopkg.in/urfave/cli.v1"

	"github.com/ethereumproject/forkrules/ethdb"
)

// These are all the command line flags we support.
// The flags are defined here so their names and help texts
// are the same for all commands.

var (
	// General settings
	ChainIdentityFlag = cli.StringFlag{
		Name:  "chain",
		Usage: `Chain identifier (default='mainnet', test='ropsten') or path to JSON chain configuration file (eg './path/to/chain.json')`,
		Value: "mainnet",
	}
	DataDirFlag = cli.StringFlag{
		Name:  "data-dir,datadir",
		Usage: "Data directory for the header database",
		Value: "forkrules-data",
	}
	DatabaseFlag = cli.StringFlag{
		Name:  "db",
		Usage: "Database backend (leveldb, bolt, memory)",
		Value: ethdb.BackendLevelDB,
	}
	CacheFlag = cli.IntFlag{
		Name:  "cache",
		Usage: "Megabytes of memory allocated to internal caching (min 16MB / database forced)",
		Value: 16,
	}
	VerbosityFlag = cli.StringFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: error, warn, info, core, debug, detail",
		Value: "warn",
	}
	MetricsFlag = cli.StringFlag{
		Name:  "metrics",
		Usage: "Append metrics snapshots as JSON to the given file",
	}
	NoColorFlag = cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable colored output",
	}

	// Header settings
	TimeFlag = cli.Uint64Flag{
		Name:  "time",
		Usage: "Timestamp of the block (default: parent's + 1)",
	}
	GasLimitFlag = cli.Uint64Flag{
		Name:  "gas-limit",
		Usage: "Gas limit of the block (default: computed from the parent)",
	}
	CoinbaseFlag = cli.StringFlag{
		Name:  "coinbase",
		Usage: "Hex address of the block's beneficiary",
	}
	ExtraDataFlag = cli.StringFlag{
		Name:  "extra",
		Usage: "Block extra data",
	}
	NumberFlag = cli.Uint64Flag{
		Name:  "number",
		Usage: "Number of the block whose rules apply",
	}
)
