package arraycache

import (
	"fmt"
	"sort"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// Call carries the arguments of one invocation of a wrapped function:
// positional arguments in call order plus named keyword arguments.
// It is the explicit stand-in for dynamic argument capture, so two
// equivalent invocations always produce the same cache key.
type Call struct {
	args   []any
	kwargs map[string]any
}

// NewCall creates a Call with the given positional arguments.
// Positional order is significant and becomes part of the cache key.
func NewCall(args ...any) *Call {
	return &Call{args: args}
}

// With adds a keyword argument and returns the Call for chaining.
// Keyword arguments are canonicalized by name, so the order in which
// they are added never changes the cache key.
func (c *Call) With(key string, value any) *Call {
	if c.kwargs == nil {
		c.kwargs = make(map[string]any)
	}
	c.kwargs[key] = value
	return c
}

// NArgs returns the number of positional arguments.
func (c *Call) NArgs() int {
	return len(c.args)
}

// Arg returns the positional argument at index i.
// Returns nil if i is out of range.
func (c *Call) Arg(i int) any {
	if i < 0 || i >= len(c.args) {
		return nil
	}
	return c.args[i]
}

// Kwarg returns the keyword argument with the given name.
func (c *Call) Kwarg(key string) (any, bool) {
	v, ok := c.kwargs[key]
	return v, ok
}

// String returns the canonical representation of the call, without the
// function name. Useful for debugging and logging.
func (c *Call) String() string {
	return c.fingerprint("")
}

// argPrinter renders argument values deterministically: map keys are
// sorted and pointer addresses are suppressed, so the same value always
// produces the same representation regardless of memory layout.
var argPrinter = spew.ConfigState{
	Indent:                  " ",
	SortKeys:                true,
	SpewKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// fingerprint builds the canonical "name(arg,...,key=value,...)" form
// that the cache key is derived from. Positional arguments keep call
// order; keyword arguments are sorted by name.
func (c *Call) fingerprint(name string) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')

	for i, arg := range c.args {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(argPrinter.Sprintf("%#v", arg))
	}

	if len(c.kwargs) > 0 {
		keys := make([]string, 0, len(c.kwargs))
		for k := range c.kwargs {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			if len(c.args) > 0 || k != keys[0] {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, "%s=%s", k, argPrinter.Sprintf("%#v", c.kwargs[k]))
		}
	}

	b.WriteByte(')')
	return b.String()
}
