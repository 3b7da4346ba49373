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

// Package logger holds the verbosity levels used with glog.V throughout the module.
//
//	glog.V(logger.Info).Infof("registered %d fork rule sets", n)
package logger

import "github.com/golang/glog"

const (
	Error glog.Level = iota + 1
	Warn
	Info
	Core
	Debug
	Detail

	Ridiculousness glog.Level = 100
)

// Verbosity maps a user facing verbosity name onto a glog level. Unknown names
// fall back to Info.
func Verbosity(name string) glog.Level {
	switch name {
	case "error":
		return Error
	case "warn":
		return Warn
	case "core":
		return Core
	case "debug":
		return Debug
	case "detail":
		return Detail
	}
	return Info
}
