package options

import "runtime"

type ProcessingOption func(o *ProcessingOptions)

// WithMaxGoroutines sets how many goroutines a single resampling pass may use.
// Values below 1 are treated as 1.
func WithMaxGoroutines(n int) ProcessingOption {
	return func(o *ProcessingOptions) {
		o.MaxGoroutines = n
	}
}

// WithAllCPUs uses one goroutine per available CPU.
func WithAllCPUs() ProcessingOption {
	return func(o *ProcessingOptions) {
		o.MaxGoroutines = runtime.GOMAXPROCS(0)
	}
}

// WithOptions copies every setting from an existing ProcessingOptions.
func WithOptions(other *ProcessingOptions) ProcessingOption {
	return func(o *ProcessingOptions) {
		if other != nil {
			*o = *other
		}
	}
}

type ProcessingOptions struct {
	// MaxGoroutines caps the workers used per pass. Output does not depend on it.
	MaxGoroutines int
}

func NewProcessingOptions(opts ...ProcessingOption) *ProcessingOptions {
	opt := &ProcessingOptions{MaxGoroutines: 1}
	for _, o := range opts {
		o(opt)
	}
	if opt.MaxGoroutines < 1 {
		opt.MaxGoroutines = 1
	}
	return opt
}
