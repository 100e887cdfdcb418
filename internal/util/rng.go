package util

import "math/rand"

// Rand is the random source every draw in a battle goes through.
// *rand.Rand satisfies it; tests substitute scripted sources.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	src := rand.NewSource(seed)
	return rand.New(src)
}

// Script replays fixed draws. Ints feed Intn (taken modulo n), Floats feed Float64.
// An exhausted queue yields 0.
type Script struct {
	Ints   []int
	Floats []float64
}

func (s *Script) Intn(n int) int {
	if len(s.Ints) == 0 {
		return 0
	}
	v := s.Ints[0]
	s.Ints = s.Ints[1:]
	if n <= 0 {
		return 0
	}
	return ((v % n) + n) % n
}

func (s *Script) Float64() float64 {
	if len(s.Floats) == 0 {
		return 0
	}
	v := s.Floats[0]
	s.Floats = s.Floats[1:]
	return v
}
