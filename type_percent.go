package sip

import "fmt"

// Percent is a whole percentage of a contribution.
type Percent int

// Clamp returns p bounded to [0, 100].
func (p Percent) Clamp() Percent { return max(0, min(100, p)) }

func (p Percent) String() string {
	return fmt.Sprintf("%d%%", int(p))
}
