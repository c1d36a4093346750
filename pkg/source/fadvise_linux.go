// pkg/source/fadvise_linux.go

package source

import (
	"os"

	"golang.org/x/sys/unix"
)

// adviseRandom tells the kernel not to read ahead, chunks are fetched in
// arbitrary order.
func adviseRandom(f *os.File) {
	if err := unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_RANDOM); err != nil {
		logger.Debugf("fadvise %s: %s", f.Name(), err)
	}
}
