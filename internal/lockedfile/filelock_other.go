//go:build !unix

package lockedfile

import "os"

// Platforms without flock get a no-op lock. A single interactive
// invocation owns its working directory, so contention is rare there.
func lock(f *os.File) error { return nil }

func unlockFile(f *os.File) error { return nil }
