// pkg/utils/process.go

package utils

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

var started = time.Now()

func Now() time.Time {
	return time.Now()
}

// Clock returns the time since the process started.
func Clock() time.Duration {
	return time.Since(started)
}

// Rusage is the resource usage of the current process.
type Rusage struct {
	unix.Rusage
}

func (ru *Rusage) GetUtime() float64 {
	return float64(ru.Utime.Sec) + float64(ru.Utime.Usec)/1e6
}

func (ru *Rusage) GetStime() float64 {
	return float64(ru.Stime.Sec) + float64(ru.Stime.Usec)/1e6
}

func (ru *Rusage) String() string {
	return fmt.Sprintf("user %.3fs, system %.3fs, max rss %d KiB", ru.GetUtime(), ru.GetStime(), ru.Maxrss)
}

func GetRusage() *Rusage {
	var ru unix.Rusage
	_ = unix.Getrusage(unix.RUSAGE_SELF, &ru)
	return &Rusage{ru}
}
