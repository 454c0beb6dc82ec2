package lock

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync/atomic"
	"time"
)

const (
	layout     = "2006-01-02 15:04:05.000"
	warnFormat = "\u001B[93;1m[%s WARN] %v\u001B[0m\n"
)

// set by CheckDead, read by waiters and redis watchdogs
var (
	_gLogOut atomic.Bool
	_gLogger atomic.Pointer[log.Logger]
)

// CheckDead turns lock warnings on or off. Warnings go to stdout and to
// ./deadlock-<where>-<time>.log. Dead lock reports are only produced by
// builds with the debug tag.
func CheckDead(ok bool, where string) {
	if !ok {
		setLogger(nil)
		return
	}
	file, err := os.OpenFile("./deadlock-"+where+"-"+time.Now().Format("20060102150405.999")+".log", os.O_CREATE|os.O_WRONLY|os.O_SYNC|os.O_APPEND, 0666)
	if err != nil {
		_gLogOut.Store(false)
		return
	}
	setLogger(log.New(io.MultiWriter(file, os.Stdout), "", 0))
}

func setLogger(l *log.Logger) {
	_gLogger.Store(l)
	_gLogOut.Store(l != nil)
}

func warnf(format string, args ...any) {
	l := _gLogger.Load()
	if !_gLogOut.Load() || l == nil {
		return
	}
	l.Printf(warnFormat, time.Now().Format(layout), fmt.Sprintf(format, args...))
}
