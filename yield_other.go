//go:build !linux

package spinwait

import (
	"runtime"
)

func osYield() {
	runtime.Gosched()
}
