package ids

import "github.com/segmentio/ksuid"

// New returns a sortable opaque identifier. Used for request ids where a
// full UUID is unnecessary.
func New() string {
	return ksuid.New().String()
}
