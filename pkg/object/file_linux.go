// pkg/object/file_linux.go

package object

import (
	"os"

	"golang.org/x/sys/unix"
)

// chunk reads jump around the file, disable kernel read-ahead.
func adviseRandom(f *os.File) {
	_ = unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_RANDOM)
}
