package message

import "github.com/stepflow/runtime/internal/placeholder"

// Text is a localized string keyed by Language. Lookups for a missing
// language return the empty string; writing a catalog always walks
// Languages in order so serialization is stable.
type Text map[Language]string

// Format substitutes positional $1..$N placeholders in the text for the
// given language using args. See the placeholder package for the exact
// substitution rule.
func (t Text) Format(lang Language, args ...any) string {
	return placeholder.Format(t[lang], args...)
}

// FormatAll substitutes args into every language variant present, returning
// a new Text of already-substituted strings. Used when composing a
// LoggingEvent, where every language slot must be resolved at emit time.
func (t Text) FormatAll(args ...any) Text {
	if t == nil {
		return nil
	}
	out := make(Text, len(t))
	for lang := range t {
		out[lang] = t.Format(lang, args...)
	}
	return out
}

// Clone returns an independent copy of the Text map.
func (t Text) Clone() Text {
	if t == nil {
		return nil
	}
	out := make(Text, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}
