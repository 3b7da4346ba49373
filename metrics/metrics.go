// Copyright 2015 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package metrics centralizes the registration.
package metrics

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/golang/glog"
	"github.com/rcrowley/go-metrics"

	"github.com/ethereumproject/forkrules/logger"
)

// Reg is the metrics destination.
var reg = metrics.NewRegistry()

var (
	RulesResolve    = metrics.NewRegisteredMeter("rules/resolve", reg)
	RulesRegistry   = metrics.NewRegisteredCounter("rules/registry", reg)
	RulesIncomplete = metrics.NewRegisteredMeter("rules/incomplete", reg)
)

var (
	RewardUncle         = metrics.NewRegisteredMeter("reward/uncle", reg)
	RewardDepthExceeded = metrics.NewRegisteredMeter("reward/uncle/depth", reg)
)

var (
	HeaderCreate = metrics.NewRegisteredMeter("header/create", reg)
	HeaderFold   = metrics.NewRegisteredMeter("header/fold", reg)
	BlockTimer   = metrics.NewRegisteredTimer("block/assemble", reg)

	HeaderCacheHit  = metrics.NewRegisteredMeter("header/cache/hit", reg)
	HeaderCacheMiss = metrics.NewRegisteredMeter("header/cache/miss", reg)
)

var (
	DBGetTimer = metrics.NewRegisteredTimer("db/get", reg)
	DBPutTimer = metrics.NewRegisteredTimer("db/put", reg)
	DBMiss     = metrics.NewRegisteredMeter("db/miss", reg)
)

var (
	ReceiptMake          = metrics.NewRegisteredMeter("receipt/make", reg)
	ReceiptInvalid       = metrics.NewRegisteredMeter("receipt/invalid", reg)
	ReceiptInvalidStatus = metrics.NewRegisteredMeter("receipt/invalid/status", reg)
	ReceiptInvalidBloom  = metrics.NewRegisteredMeter("receipt/invalid/bloom", reg)
)

// Registry exposes the module registry, mostly for tests and reporters.
func Registry() metrics.Registry {
	return reg
}

// Write encodes a single snapshot of all registered metrics as JSON.
func Write(w io.Writer) error {
	return json.NewEncoder(w).Encode(reg)
}

// Collect writes a snapshot of the metrics to the given destination every
// interval until stop is closed.
func Collect(dest string, interval time.Duration, stop <-chan struct{}) {
	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0666)
	if err != nil {
		glog.Errorf("metrics: open %q: %v", dest, err)
		return
	}
	defer f.Close()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := Write(f); err != nil {
				glog.Errorf("metrics: log to %q: %s", dest, err)
			}
		case <-stop:
			if err := Write(f); err != nil {
				glog.V(logger.Debug).Infof("metrics: final flush to %q: %v", dest, err)
			}
			return
		}
	}
}
