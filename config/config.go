package config

import (
	"sync"

	"github.com/polylib/ppl/topology"
)

// NameFunc renders a space dimension as a display name (spec §6.4).
type NameFunc func(dim int) string

func defaultNameFunc(dim int) string {
	letters := "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	if dim < 26 {
		return string(letters[dim])
	}
	return string(letters[dim%26]) + itoa(dim/26)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	neg := n < 0
	if neg {
		n = -n
	}
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

type settings struct {
	mu          sync.RWMutex
	topology    topology.Topol
	widenImpl   topology.WidenImpl
	widenSpec   topology.WidenSpec
	nameFunc    NameFunc
}

var global = &settings{
	topology:  topology.Closed,
	widenImpl: topology.H79,
	widenSpec: topology.Risky,
	nameFunc:  defaultNameFunc,
}

// DefaultTopology returns the process-wide default topology used when a
// caller constructs a polyhedron without specifying one.
func DefaultTopology() topology.Topol {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.topology
}

// SetDefaultTopology sets the process-wide default topology. Callers must
// set this before constructing polyhedra that rely on the default, and
// must not change it concurrently with computation (spec §5).
func SetDefaultTopology(t topology.Topol) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.topology = t
}

// DefaultWidenImpl returns the process-wide default widening strategy.
func DefaultWidenImpl() topology.WidenImpl {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.widenImpl
}

// SetDefaultWidenImpl sets the process-wide default widening strategy.
func SetDefaultWidenImpl(w topology.WidenImpl) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.widenImpl = w
}

// DefaultWidenSpec returns the process-wide default widening
// precondition regime.
func DefaultWidenSpec() topology.WidenSpec {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.widenSpec
}

// SetDefaultWidenSpec sets the process-wide default widening
// precondition regime.
func SetDefaultWidenSpec(w topology.WidenSpec) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.widenSpec = w
}

// NameDim renders dimension d using the process-wide naming function.
func NameDim(d int) string {
	global.mu.RLock()
	fn := global.nameFunc
	global.mu.RUnlock()
	return fn(d)
}

// SetNameFunc overrides the process-wide dimension-naming function used
// by default by String() methods across poly/fpoly/pset. Passing nil
// restores the default A, B, C, ... naming.
func SetNameFunc(fn NameFunc) {
	global.mu.Lock()
	defer global.mu.Unlock()
	if fn == nil {
		fn = defaultNameFunc
	}
	global.nameFunc = fn
}

// Reset restores every setting to its library default. Intended for test
// isolation between cases that call the Set* functions.
func Reset() {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.topology = topology.Closed
	global.widenImpl = topology.H79
	global.widenSpec = topology.Risky
	global.nameFunc = defaultNameFunc
}
