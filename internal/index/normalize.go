package index

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// normalizeKey canonicalizes a bucket key: NFC-normalized, trimmed,
// lower-cased. Index writes and lookups both pass through here, so
// "Riyadh " and "riyadh" land in the same bucket.
func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(s)))
}
