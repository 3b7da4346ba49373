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

// forkrules inspects and exercises the consensus rules of Ethereum forks.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/golang/glog"
	"gopkg.in/urfave/cli.v1"

	"github.com/ethereumproject/forkrules/logger"
	"github.com/ethereumproject/forkrules/metrics"
)

// Version is the application revision identifier. It can be set with the linker
// as in: go build -ldflags "-X main.Version="`git describe --tags`
var Version = "source"

func makeCLIApp() (app *cli.App) {
	app = cli.NewApp()
	app.Name = filepath.Base(os.Args[0])
	app.Version = Version
	app.Usage = "inspect and apply Ethereum fork rules"

	app.Commands = []cli.Command{
		forksCommand,
		rewardCommand,
		difficultyCommand,
		validateReceiptCommand,
		importHeaderCommand,
		nextHeaderCommand,
		dumpCommand,
	}

	app.Flags = []cli.Flag{
		ChainIdentityFlag,
		DataDirFlag,
		DatabaseFlag,
		CacheFlag,
		VerbosityFlag,
		MetricsFlag,
		NoColorFlag,
	}

	stop := make(chan struct{})
	app.Before = func(ctx *cli.Context) error {
		// glog registers its flags on the standard flag set
		if err := flag.Set("logtostderr", "true"); err != nil {
			return err
		}
		level := logger.Verbosity(ctx.GlobalString(VerbosityFlag.Name))
		if err := flag.Set("v", strconv.Itoa(int(level))); err != nil {
			return err
		}
		if ctx.GlobalBool(NoColorFlag.Name) {
			color.NoColor = true
		}
		if s := ctx.GlobalString(MetricsFlag.Name); s != "" {
			go metrics.Collect(s, 3*time.Second, stop)
		}
		return nil
	}

	app.After = func(ctx *cli.Context) error {
		close(stop)
		glog.Flush()
		return nil
	}

	app.CommandNotFound = func(c *cli.Context, command string) {
		fmt.Fprintf(c.App.Writer, "Invalid command: %q. Please find `forkrules` usage below. \n", command)
		cli.ShowAppHelp(c)
		os.Exit(3)
	}
	return app
}

func main() {
	app := makeCLIApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, errorColor(err))
		os.Exit(1)
	}
}
