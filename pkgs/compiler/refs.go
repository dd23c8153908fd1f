package compiler

import (
	"regexp"
	"sort"
	"strings"
)

// expandRefs replaces every ^NAME occurrence in text with the snapshot
// expression recorded for that ref, followed by one .parent() step per
// level of depth. An optional parenthesized override keyword replaces
// the stored value: ^NAME(prev) resolves against the previous snapshot
// regardless of what the ref was declared with.
//
// Matching is textual and processed per ref name. Names are handled
// longest-first so a ref whose name is a prefix of another can never
// capture the longer name's occurrences.
func expandRefs(text string, opts *Options) string {
	if len(opts.Refs) == 0 || !strings.Contains(text, "^") {
		return text
	}

	names := make([]string, 0, len(opts.Refs))
	for name := range opts.Refs {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})

	for _, name := range names {
		ref := opts.Refs[name]
		pattern := regexp.MustCompile(`\^` + regexp.QuoteMeta(name) + `\b(?:\((next|prev)\))?`)
		text = pattern.ReplaceAllStringFunc(text, func(match string) string {
			value := ref.Value
			if idx := strings.IndexByte(match, '('); idx >= 0 {
				value = match[idx+1 : len(match)-1]
			}
			return value + strings.Repeat(".parent()", ref.Depth)
		})
	}

	return text
}
