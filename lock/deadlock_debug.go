//go:build debug

package lock

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/ameise84/spinwait"
)

var deadReportInterval = 5 * time.Second

type stack struct {
	file     string
	funcName string
	line     int
	gid      int
	skip     int
}

func callerStack(gid int, skip int) stack {
	pc, file, line, _ := runtime.Caller(skip + 1)
	return stack{file: file, funcName: runtime.FuncForPC(pc).Name(), line: line, gid: gid, skip: skip}
}

// deadWatch reports a wait that has lasted longer than deadReportInterval,
// once per interval. The clock is only read once the spinner has left its
// spin phase, holders only when a report is due.
type deadWatch struct {
	t0 time.Time
	t1 time.Time
}

func newDeadWatch() deadWatch {
	now := time.Now()
	return deadWatch{t0: now, t1: now}
}

func (w *deadWatch) check(s *spinwait.Spinner, skip int, holders func() []stack) {
	if !_gLogOut.Load() || !s.NextWillYield() {
		return
	}
	t2 := time.Now()
	if t2.Sub(w.t1) < deadReportInterval {
		return
	}
	w.t1 = t2

	infos := holders()
	b := strings.Builder{}
	if len(infos) == 0 {
		b.WriteString("\t->other processes\n")
	}
	for n, info := range infos {
		b.WriteString(fmt.Sprintf("\t-> [%d][gid:%d] func: %s\t%s:%d\n", n, info.gid, info.funcName, info.file, info.line))
	}
	c := callerStack(getGID(), skip+1)
	warnf("dead lock[%.2f s]\nlock on:\n%s\ncalling on:\n\t[gid:%d] func: %s\t%s:%d\n", t2.Sub(w.t0).Seconds(), b.String(), c.gid, c.funcName, c.file, c.line)
}
