package search

// Options tunes the fuzzy engine.
type Options struct {
	// Threshold ranges from 0 (exact, contiguous match) to 1 (very fuzzy).
	Threshold float64 `koanf:"threshold" yaml:"threshold"`
	// Keys are the item fields folded into each item's search text.
	Keys []string `koanf:"keys" yaml:"keys"`
	// IgnoreLocation makes the position of a match irrelevant. When false,
	// matches starting late in the text are rejected by Threshold too.
	IgnoreLocation bool `koanf:"ignore_location" yaml:"ignore_location"`
	// MinMatchCharLength is the shortest query that produces results.
	MinMatchCharLength int `koanf:"min_match_char_length" yaml:"min_match_char_length"`
	// Fuzzy enables the fuzzy engine. When false the index falls back to
	// case-insensitive substring scans in list order.
	Fuzzy bool `koanf:"fuzzy" yaml:"fuzzy"`
}

// Recognized keys.
const (
	KeyName         = "name"
	KeyPath         = "path"
	KeyMethod       = "method"
	KeyFunctionName = "functionName"
	KeyAttributes   = "attributes"
)

// DefaultOptions returns the standard tuning.
func DefaultOptions() Options {
	return Options{
		Threshold:          0.3,
		Keys:               []string{KeyName, KeyPath, KeyMethod},
		IgnoreLocation:     true,
		MinMatchCharLength: 1,
		Fuzzy:              true,
	}
}
