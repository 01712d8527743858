package roseingrave

// Options holds configuration for a Workbook.
type Options struct {
	applyFormatting bool
	rawBarNumbers   bool
}

func defaultOptions() *Options {
	return &Options{
		applyFormatting: true,
	}
}

// Option configures a Workbook.
type Option func(*Options)

// WithFormatting controls whether the formatting directive batch is applied
// when a sheet is created (default: true). Disabling it writes values only.
func WithFormatting(apply bool) Option {
	return func(o *Options) { o.applyFormatting = apply }
}

// WithRawBarNumbers writes bar numbers as text instead of numbers.
func WithRawBarNumbers(raw bool) Option {
	return func(o *Options) { o.rawBarNumbers = raw }
}
