//go:build !unix

package arena

// mapChunk falls back to the Go heap where anonymous mappings are unavailable.
func mapChunk(size int) ([]byte, error) {
	return make([]byte, size), nil
}

func unmapChunk([]byte) error { return nil }
