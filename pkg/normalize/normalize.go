// Package normalize rewrites backend output so it builds in a no_std crate.
package normalize

import "strings"

// Replacement is a literal substring substitution
type Replacement struct {
	From string
	To   string
}

// StdToCore maps host standard library paths emitted by bindgen to their
// core equivalents. Entries are applied in order; longer paths come first
// so a shorter prefix never pre-empts them.
var StdToCore = []Replacement{
	{"::std::os::raw::", "::core::ffi::"},
	{"::std::option::Option", "::core::option::Option"},
	{"::std::marker::PhantomData", "::core::marker::PhantomData"},
	{"::std::mem::", "::core::mem::"},
	{"::std::ptr::", "::core::ptr::"},
	{"::std::fmt::", "::core::fmt::"},
	{"::std::slice::", "::core::slice::"},
	{"::std::cmp::", "::core::cmp::"},
	{"::std::hash::", "::core::hash::"},
}

const constPrefix = "pub const "

// ReplaceIdentifiers applies every replacement in table order, each one
// across the whole text.
func ReplaceIdentifiers(src string, table []Replacement) string {
	for _, r := range table {
		src = strings.ReplaceAll(src, r.From, r.To)
	}
	return src
}

// RewriteConstants uppercases the name of every `pub const` item. The
// rewritten line has no whitespace on either side of the colon, except a
// single space kept when the type itself starts with a path separator.
func RewriteConstants(src string) string {
	lines := strings.Split(src, "\n")
	for i, line := range lines {
		lines[i] = rewriteConstLine(line)
	}
	return strings.Join(lines, "\n")
}

func rewriteConstLine(line string) string {
	rest, ok := strings.CutPrefix(line, constPrefix)
	if !ok {
		return line
	}
	name, tail, ok := strings.Cut(rest, ":")
	if !ok {
		return line
	}
	tail = strings.TrimLeft(tail, " \t")
	if strings.HasPrefix(tail, ":") {
		// `X:::core` would not parse
		tail = " " + tail
	}
	return constPrefix + asciiUpper(strings.TrimSpace(name)) + ":" + tail
}

// asciiUpper uppercases a-z only and leaves every other rune as is
func asciiUpper(s string) string {
	return strings.Map(func(r rune) rune {
		if 'a' <= r && r <= 'z' {
			return r - 'a' + 'A'
		}
		return r
	}, s)
}

// Bindings runs both stages over generated source
func Bindings(src string) string {
	return RewriteConstants(ReplaceIdentifiers(src, StdToCore))
}

// TrailingNewline returns s ending in exactly one newline
func TrailingNewline(s string) string {
	return strings.TrimRight(s, "\n") + "\n"
}
