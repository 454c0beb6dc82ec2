package lock

import (
	"bytes"
	"runtime"
	"strconv"
)

var goroutinePrefix = []byte("goroutine ")

// getGID parses the id of the calling goroutine out of its stack header,
// "goroutine 18 [running]:".
func getGID() int {
	var buf [64]byte
	b := buf[:runtime.Stack(buf[:], false)]
	b = bytes.TrimPrefix(b, goroutinePrefix)
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	n, err := strconv.Atoi(string(b))
	if err != nil {
		panic("lock: cannot parse goroutine id: " + err.Error())
	}
	return n
}
