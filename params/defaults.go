// Copyright 2016 The go-ethereum Authors
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

package params

import "math/big"

var (
	// MainnetChainConfig is the fork schedule of the main Ethereum network.
	MainnetChainConfig = &ChainConfig{
		Identity: "mainnet",
		Name:     "Ethereum Mainnet",
		ChainID:  big.NewInt(1),
		Forks: Forks{
			{Name: Frontier, Block: big.NewInt(0)},
			{Name: Homestead, Block: big.NewInt(1150000)},
			{Name: TangerineWhistle, Block: big.NewInt(2463000)},
			{Name: SpuriousDragon, Block: big.NewInt(2675000)},
			{Name: Byzantium, Block: big.NewInt(4370000)},
			{Name: Constantinople, Block: big.NewInt(7280000)},
			{Name: Petersburg, Block: big.NewInt(7280000)},
			{Name: Istanbul, Block: big.NewInt(9069000)},
			{Name: MuirGlacier, Block: big.NewInt(9200000)},
		},
	}

	// RopstenChainConfig is the fork schedule of the Ropsten test network.
	RopstenChainConfig = &ChainConfig{
		Identity: "ropsten",
		Name:     "Ropsten Testnet",
		ChainID:  big.NewInt(3),
		Forks: Forks{
			{Name: Frontier, Block: big.NewInt(0)},
			{Name: Homestead, Block: big.NewInt(0)},
			{Name: TangerineWhistle, Block: big.NewInt(0)},
			{Name: SpuriousDragon, Block: big.NewInt(10)},
			{Name: Byzantium, Block: big.NewInt(1700000)},
			{Name: Constantinople, Block: big.NewInt(4230000)},
			{Name: Petersburg, Block: big.NewInt(4939394)},
			{Name: Istanbul, Block: big.NewInt(6485846)},
			{Name: MuirGlacier, Block: big.NewInt(7117117)},
		},
	}
)

// Chain identities.
var builtinConfigs = map[string]*ChainConfig{
	"main":    MainnetChainConfig,
	"mainnet": MainnetChainConfig,
	"ropsten": RopstenChainConfig,
	"testnet": RopstenChainConfig,
}
