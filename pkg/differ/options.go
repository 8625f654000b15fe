package differ

// Option is a functional option for configuring Differ.
type Option func(*differ)

// WithIgnoredFields sets columns to ignore during comparison, for example
// state_name when only code membership matters.
func WithIgnoredFields(fields ...string) Option {
	return func(d *differ) {
		for _, field := range fields {
			d.ignoreFields[field] = true
		}
	}
}
