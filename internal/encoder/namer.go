package encoder

import (
	"path/filepath"

	"github.com/google/uuid"
)

// Namer produces output file paths. It is injected so callers and tests can
// control where renders land instead of relying on ambient temp-file naming.
type Namer interface {
	Next() string
}

// UUIDNamer names outputs with a random UUID under a fixed directory.
type UUIDNamer struct {
	Dir string
}

// NewNamer returns the default UUID-based namer rooted at dir.
func NewNamer(dir string) UUIDNamer {
	return UUIDNamer{Dir: dir}
}

// Next returns a unique .mp4 path under the namer's directory.
func (n UUIDNamer) Next() string {
	return filepath.Join(n.Dir, "slidecast_"+uuid.NewString()+".mp4")
}
