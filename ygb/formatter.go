package ygb

// Formatter encodes values for one bar wire format and decodes its input.
type Formatter interface {
	// Header is written once before the first line. It may be empty.
	Header() string
	// FormatAll renders one line. It must not reorder, drop or merge values.
	FormatAll(values []Value) string
	// HandleStdin parses one input line and runs the matching command.
	// Malformed lines and unknown commands are ignored.
	HandleStdin(line string, r Registry)
}

// Registry maps command names to callbacks.
type Registry map[string]func()

// Call runs the named command and reports whether it exists.
func (r Registry) Call(name string) bool {
	fn, ok := r[name]
	if !ok || fn == nil {
		return false
	}

	fn()

	return true
}
