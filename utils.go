package main

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

func (a *storeBlocks) absoluteURL(path string) string {
	return strings.TrimSuffix(a.cfg.Server.PublicAddress, "/") + path
}

func sortedKeys[K ~string, V any](m map[K]V) []K {
	keys := lo.Keys(m)
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
