// Locale-aware sorting. The logbook's display strings are French, so name
// and title orderings use French collation rather than byte order.
package sqlite

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// sortBy sorts records in place by the French collation of the given key.
// A fresh collator per call: collators carry internal buffers and are not
// safe for concurrent use.
func sortBy[T any](records []T, key func(T) string) {
	c := collate.New(language.French)
	sort.SliceStable(records, func(i, j int) bool {
		return c.CompareString(key(records[i]), key(records[j])) < 0
	})
}
