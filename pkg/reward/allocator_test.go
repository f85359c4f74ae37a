// Copyright (c) 2025 Nocturne Labs. All Rights Reserved.
// This is licensed software from Nocturne Labs, for limitations
// and restrictions contact your company contract manager.

package reward

import "testing"

// seqIntn replays a fixed sequence of Intn results.
type seqIntn struct {
	picks []int
	i     int
}

func (r *seqIntn) Float64() float64 { return 0 }

func (r *seqIntn) Intn(n int) int {
	v := r.picks[r.i%len(r.picks)] % n
	r.i++
	return v
}

func TestAllocate_Length(t *testing.T) {
	catalog := []string{"Ionized Coil", "Flux Capacitor", "Drift Core"}
	a := NewAllocator(catalog, &seqIntn{picks: []int{0, 1, 2, 0, 1}})

	got := a.Allocate(5)
	if len(got) != 5 {
		t.Fatalf("Allocate(5) returned %d rewards, expected 5", len(got))
	}
	for _, name := range got {
		found := false
		for _, c := range catalog {
			if name == c {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("allocated %q which is not in the catalog", name)
		}
	}
}

func TestAllocate_DuplicatesNotFiltered(t *testing.T) {
	catalog := []string{"Ionized Coil", "Flux Capacitor"}
	// Every draw picks index 0: with-replacement sampling must keep all of them.
	a := NewAllocator(catalog, &seqIntn{picks: []int{0}})

	got := a.Allocate(4)
	if len(got) != 4 {
		t.Fatalf("Allocate(4) returned %d rewards, expected 4", len(got))
	}
	for i, name := range got {
		if name != "Ionized Coil" {
			t.Errorf("got[%d] = %q, expected repeated draw to be kept", i, name)
		}
	}
}

func TestAllocate_EmptyCatalog(t *testing.T) {
	a := NewAllocator(nil, &seqIntn{picks: []int{0}})

	got := a.Allocate(3)
	if got == nil {
		t.Fatal("Allocate() returned nil, expected empty slice")
	}
	if len(got) != 0 {
		t.Errorf("Allocate() on empty catalog returned %d rewards, expected 0", len(got))
	}
}

func TestAllocate_NonPositive(t *testing.T) {
	a := NewAllocator([]string{"Ionized Coil"}, &seqIntn{picks: []int{0}})

	if got := a.Allocate(0); len(got) != 0 {
		t.Errorf("Allocate(0) returned %d rewards, expected 0", len(got))
	}
	if got := a.Allocate(-2); len(got) != 0 {
		t.Errorf("Allocate(-2) returned %d rewards, expected 0", len(got))
	}
}
