package summarizer

import "github.com/user/pinframe/pkg/driver"

// Formatter defines the interface for formatting a Summary.
type Formatter interface {
	// Format converts a Summary to a formatted string.
	Format(summary *Summary) string
}

// FormatFunc is a function adapter for the Formatter interface.
type FormatFunc func(summary *Summary) string

// Format implements the Formatter interface.
func (f FormatFunc) Format(summary *Summary) string {
	return f(summary)
}

// Translator maps an English label to the display language.
type Translator func(key string) string

// Option configures a formatter.
type Option func(*options)

type options struct {
	translate Translator
	version   string
}

// WithTranslator sets the label translator.
func WithTranslator(t Translator) Option {
	return func(o *options) {
		o.translate = t
	}
}

// WithVersion sets the tool version printed in the footer.
func WithVersion(v string) Option {
	return func(o *options) {
		o.version = v
	}
}

func newOptions(opts []Option) options {
	o := options{translate: func(key string) string { return key }}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// statusLabel is the English label of a status, used as a translation key.
func statusLabel(s driver.Status) string {
	switch s {
	case driver.StatusCommitted:
		return "Saved"
	case driver.StatusSkipped:
		return "Skipped"
	case driver.StatusUnsaved:
		return "Not saved"
	default:
		return "Not visited"
	}
}
