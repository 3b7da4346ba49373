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

// Fork identifiers. These are the names used by chain configuration files and
// log output, and they identify rule sets in a registry.
const (
	Frontier         = "frontier"
	Homestead        = "homestead"
	TangerineWhistle = "tangerine-whistle"
	SpuriousDragon   = "spurious-dragon"
	Byzantium        = "byzantium"
	Constantinople   = "constantinople"
	Petersburg       = "petersburg"
	Istanbul         = "istanbul"
	MuirGlacier      = "muir-glacier"
)

// ForkOrder is the canonical succession of forks. Every fork inherits the rules
// of the one before it.
var ForkOrder = []string{
	Frontier,
	Homestead,
	TangerineWhistle,
	SpuriousDragon,
	Byzantium,
	Constantinople,
	Petersburg,
	Istanbul,
	MuirGlacier,
}

// ForkIndex returns the position of name in ForkOrder, or -1 if the fork is
// unknown.
func ForkIndex(name string) int {
	for i, n := range ForkOrder {
		if n == name {
			return i
		}
	}
	return -1
}
