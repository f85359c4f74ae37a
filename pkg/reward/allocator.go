// Copyright (c) 2025 Nocturne Labs. All Rights Reserved.
// This is licensed software from Nocturne Labs, for limitations
// and restrictions contact your company contract manager.

// Package reward samples reward names from the static catalog.
package reward

import (
	"github.com/sirupsen/logrus"

	"github.com/nocturnelabs/arbiter-service/pkg/random"
)

// Allocator draws rewards from an immutable catalog.
//
// Sampling is with replacement: every draw is an independent uniform pick
// over the full catalog, so duplicates within one allocation are expected
// and are not filtered. This replicates the legacy gacha draw semantics
// on purpose.
type Allocator struct {
	catalog []string
	rng     random.Source
}

// NewAllocator creates an allocator over the given catalog.
func NewAllocator(catalog []string, rng random.Source) *Allocator {
	return &Allocator{catalog: catalog, rng: rng}
}

// Allocate returns n independently drawn reward names. An empty catalog
// yields an empty slice rather than an error, so callers can still
// complete their flow with zero rewards shown. Non-positive n yields an
// empty slice.
func (a *Allocator) Allocate(n int) []string {
	if n <= 0 || len(a.catalog) == 0 {
		if len(a.catalog) == 0 {
			logrus.Warnf("reward catalog is empty, allocating nothing")
		}
		return []string{}
	}

	selected := make([]string, 0, n)
	for i := 0; i < n; i++ {
		selected = append(selected, a.catalog[a.rng.Intn(len(a.catalog))])
	}
	return selected
}

// CatalogSize returns the number of entries in the catalog.
func (a *Allocator) CatalogSize() int {
	return len(a.catalog)
}
