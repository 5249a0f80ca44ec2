//go:build unix

package arena

import (
	"errors"

	"golang.org/x/sys/unix"
)

// mapChunk reserves size bytes of anonymous private memory.
func mapChunk(size int) ([]byte, error) {
	return unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
}

func unmapChunk(b []byte) error {
	if b == nil {
		return nil
	}
	err := unix.Munmap(b)
	if errors.Is(err, unix.EINVAL) {
		// Treat double-unmap as no-op for callers.
		return nil
	}
	return err
}
