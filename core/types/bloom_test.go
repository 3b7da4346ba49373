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

package types

import (
	"bytes"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"

	"github.com/ethereumproject/forkrules/core/vm"
)

func TestBloom(t *testing.T) {
	positive := []string{
		"testtest",
		"test",
		"hallo",
		"other",
	}
	negative := []string{
		"tes",
		"lo",
	}

	var bloom Bloom
	for _, data := range positive {
		bloom.Add([]byte(data))
	}

	for _, data := range positive {
		if !bloom.Test([]byte(data)) {
			t.Error("expected", data, "to test true")
		}
	}
	for _, data := range negative {
		if bloom.Test([]byte(data)) {
			t.Error("did not expect", data, "to test true")
		}
	}
}

func TestBloomOrCommutes(t *testing.T) {
	var a, b Bloom
	a.Add([]byte("first"))
	b.Add([]byte("second"))

	ab, ba := a.Or(b), b.Or(a)
	assert.Equal(t, ab, ba)
	assert.True(t, ab.Test([]byte("first")))
	assert.True(t, ab.Test([]byte("second")))

	// operands are values, the union is fresh
	assert.False(t, a.Test([]byte("second")))
	assert.False(t, b.Test([]byte("first")))
}

func TestBloomOrSaturated(t *testing.T) {
	var full Bloom
	for i := range full {
		full[i] = 0xff
	}
	assert.Equal(t, full, Bloom{}.Or(full))
	assert.Equal(t, full, full.Or(Bloom{}))
}

func TestLogsBloom(t *testing.T) {
	addr := common.HexToAddress("0x0000000000000000000000000000000000000abc")
	topic := common.HexToHash("0xdeadbeef")
	bloom := LogsBloom(vm.Logs{vm.NewLog(addr, []common.Hash{topic}, []byte("data"))})

	assert.True(t, bloom.Test(addr.Bytes()))
	assert.True(t, bloom.Test(topic.Bytes()))
	// log data is not part of the bloom
	assert.False(t, bloom.Test([]byte("data")))
	assert.Equal(t, Bloom{}, LogsBloom(nil))
}

func TestCreateBloom(t *testing.T) {
	r1 := NewReceipt(ReceiptStatusSuccessful, 1)
	r1.Bloom.Add([]byte("one"))
	r2 := NewReceipt(ReceiptStatusSuccessful, 2)
	r2.Bloom.Add([]byte("two"))

	assert.Equal(t, r1.Bloom.Or(r2.Bloom), CreateBloom(Receipts{r1, r2}))
	assert.Equal(t, CreateBloom(Receipts{r2, r1}), CreateBloom(Receipts{r1, r2}))
}

func TestBloomText(t *testing.T) {
	var b Bloom
	b.Add([]byte("text"))
	enc, err := b.MarshalText()
	assert.NoError(t, err)
	assert.True(t, bytes.HasPrefix(enc, []byte("0x")))

	var dec Bloom
	assert.NoError(t, dec.UnmarshalText(enc))
	assert.Equal(t, b, dec)

	assert.Equal(t, b, BytesToBloom(b.Bytes()))
	assert.Equal(t, 0, b.Big().Cmp(BytesToBloom(b.Bytes()).Big()))
}
