package logging

import (
	"time"

	"go.uber.org/zap"
)

// slowThreshold is the elapsed time above which a finished operation is
// logged at warn instead of debug.
const slowThreshold = time.Second

// Timer measures the runtime of a single operation and logs the duration
// when stopped.
type Timer struct {
	log   *zap.Logger
	op    string
	start time.Time
}

// StartTimer begins timing op. The usual pattern is
//
//	defer logging.StartTimer("database", "RunMigrations").Stop()
func StartTimer(subsystem, op string) *Timer {
	return &Timer{
		log:   Named(subsystem),
		op:    op,
		start: time.Now(),
	}
}

// Stop logs the elapsed time and returns it. Operations slower than one
// second are logged at warn.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	fields := []zap.Field{zap.String("op", t.op), zap.Duration("elapsed", elapsed)}
	if elapsed >= slowThreshold {
		t.log.Warn("slow operation", fields...)
	} else {
		t.log.Debug("operation finished", fields...)
	}
	return elapsed
}

// Timed runs fn and logs its runtime, returning fn's error unchanged.
func Timed(subsystem, op string, fn func() error) error {
	timer := StartTimer(subsystem, op)
	defer timer.Stop()
	return fn()
}
