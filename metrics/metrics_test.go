// Copyright 2014 The go-ethereum Authors
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

package metrics

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	RulesResolve.Mark(3)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf))

	var snapshot map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &snapshot))
	require.Contains(t, snapshot, "rules/resolve")
	assert.GreaterOrEqual(t, snapshot["rules/resolve"]["count"], float64(3))
	assert.Contains(t, snapshot, "block/assemble")
	assert.Contains(t, snapshot, "db/get")
}

func TestCollectFlushesOnStop(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "metrics.json")
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		Collect(dest, time.Hour, stop)
		close(done)
	}()
	close(stop)
	<-done

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "rules/resolve")
}
