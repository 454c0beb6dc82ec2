package spinwait

import (
	_ "unsafe"
)

// procyield executes cycles PAUSE (amd64) or YIELD (arm64) instructions, the
// same hint the runtime spins its own mutexes with.
//
//go:linkname procyield runtime.procyield
func procyield(cycles uint32)
