package mention

import (
	"errors"
	"fmt"
)

// ErrDesync reports that the number of sentinel runes in a text differs from
// the number of mentions aligned with it.
var ErrDesync = errors.New("mention: sentinel count does not match mention list")

// DesyncError carries the counts behind an ErrDesync failure.
type DesyncError struct {
	Sentinels int
	Mentions  int
}

func (e *DesyncError) Error() string {
	return fmt.Sprintf("mention: %d sentinels but %d mentions", e.Sentinels, e.Mentions)
}

func (e *DesyncError) Unwrap() error { return ErrDesync }

// Underflow reports whether the text holds more sentinels than there are
// mentions to drain.
func (e *DesyncError) Underflow() bool { return e.Sentinels > e.Mentions }
