// Package placeholder implements the $1..$N positional substitution rule
// shared by every localized message text in the catalog.
//
// Substitution is 1-based: $1 is replaced by the first argument, $2 by the
// second, and so on. $0 is always left as a literal two-character sequence.
// An out-of-range placeholder ($5 with only 3 arguments) is left intact.
// Substitution runs exactly once over the input and never re-scans its own
// output, so a replacement value that itself contains "$1" is never expanded.
package placeholder

import (
	"fmt"
	"strconv"
	"strings"
)

// Format replaces every $1..$N placeholder in text with the string form of
// the corresponding 1-indexed argument. With no arguments, Format is the
// identity function.
func Format(text string, args ...any) string {
	if len(args) == 0 || !strings.Contains(text, "$") {
		return text
	}

	var out strings.Builder
	out.Grow(len(text))

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '$' || i+1 >= len(runes) {
			out.WriteRune(runes[i])
			continue
		}

		j := i + 1
		for j < len(runes) && runes[j] >= '0' && runes[j] <= '9' {
			j++
		}
		if j == i+1 {
			// "$" not followed by a digit: literal.
			out.WriteRune(runes[i])
			continue
		}

		digits := string(runes[i+1 : j])
		n, err := strconv.Atoi(digits)
		if err != nil {
			out.WriteRune(runes[i])
			continue
		}

		if n == 0 {
			// $0 is always literal.
			out.WriteString("$0")
			i = j - 1
			continue
		}

		if n >= 1 && n <= len(args) {
			out.WriteString(argString(args[n-1]))
		} else {
			// Out of range: leave the placeholder intact.
			out.WriteString("$" + digits)
		}
		i = j - 1
	}

	return out.String()
}

func argString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
