package plisio

import (
	"fmt"
	"strings"
)

// callbackField is one key/value pair of a callback payload in canonical order.
type callbackField struct {
	key   string
	value string
}

// serializeFields encodes sorted callback fields the way the provider's
// reference implementation does before signing: an associative string array
// in PHP serialize() form, a:N:{s:len:"key";s:len:"value";...}. The signature
// is computed over exactly these bytes, so lengths are byte lengths, not rune
// counts, and no escaping is applied.
func serializeFields(fields []callbackField) string {
	var b strings.Builder
	fmt.Fprintf(&b, "a:%d:{", len(fields))
	for _, f := range fields {
		writeSerializedString(&b, f.key)
		writeSerializedString(&b, f.value)
	}
	b.WriteByte('}')
	return b.String()
}

func writeSerializedString(b *strings.Builder, s string) {
	fmt.Fprintf(b, `s:%d:"%s";`, len(s), s)
}
