package result

import (
	"k8s.io/utils/clock"
)

// Options are the settings shared by every result constructor.
type Options struct {
	Clock clock.PassiveClock
}

func (o *Options) ApplyOptions(opts []Option) {
	for _, opt := range opts {
		opt.ApplyToOptions(o)
	}
}

type Option interface {
	ApplyToOptions(target *Options)
}

// WithClock changes the clock used to compute expiry timestamps from the
// system clock to the given one. Expiry accessors read the clock anew on
// every call, so stepping a fake clock moves their results accordingly.
type WithClock struct {
	clock.PassiveClock
}

var _ Option = WithClock{}

func (wc WithClock) ApplyToOptions(target *Options) {
	target.Clock = wc.PassiveClock
}
