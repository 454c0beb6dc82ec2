//go:build debug

package spinwait

func assert(ok bool, msg string) {
	if !ok {
		panic("spinwait: assertion failed: " + msg)
	}
}
