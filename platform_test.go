package spinwait

import (
	"fmt"
	"strings"
	"time"
)

// recorder is a Platform that logs every action and keeps a fake clock which
// only moves when Sleep is called. Clock reads are counted, not logged.
type recorder struct {
	actions    []string
	now        time.Time
	nowCalls   int
	sinceCalls int
}

func newRecorder() *recorder {
	return &recorder{now: time.Unix(0, 0)}
}

func (r *recorder) SpinHint(n int) {
	r.actions = append(r.actions, fmt.Sprintf("spin:%d", n))
}

func (r *recorder) YieldSameAffinity() {
	r.actions = append(r.actions, "yield")
}

func (r *recorder) YieldAny() {
	r.actions = append(r.actions, "yieldAny")
}

func (r *recorder) Sleep(ms int) {
	r.actions = append(r.actions, fmt.Sprintf("sleep:%d", ms))
	r.now = r.now.Add(time.Duration(ms) * time.Millisecond)
}

func (r *recorder) Now() time.Time {
	r.nowCalls++
	return r.now
}

func (r *recorder) Since(t time.Time) time.Duration {
	r.sinceCalls++
	return r.now.Sub(t)
}

// count returns how many actions of kind were recorded, "spin" matches
// "spin:35".
func (r *recorder) count(kind string) int {
	n := 0
	for _, a := range r.actions {
		if k, _, _ := strings.Cut(a, ":"); k == kind {
			n++
		}
	}
	return n
}

func testConfig(single bool) (*Config, *recorder) {
	r := newRecorder()
	return NewConfig(WithPlatform(r), WithSingleProcessor(single)), r
}
