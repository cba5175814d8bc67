package yaegiwrappers

import (
	"reflect"
)

var (
	Symbols = make(map[string]map[string]reflect.Value)
)

// storeblocks packages
//go:generate yaegi extract -name yaegiwrappers go.storeblocks.app/app/pkgs/plugintypes
//go:generate yaegi extract -name yaegiwrappers go.storeblocks.app/app/pkgs/htmlbuilder
//go:generate yaegi extract -name yaegiwrappers go.storeblocks.app/app/pkgs/bufferpool
