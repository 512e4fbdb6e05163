package plisio

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"html"
	"sort"
	"strings"
)

// VerifyHashField is the payload field carrying the callback signature.
const VerifyHashField = "verify_hash"

// VerifyCallbackData authenticates a webhook payload against the store API
// key. The signature is an HMAC-SHA1 over the canonical serialization of all
// fields except verify_hash, sorted ascending by raw key bytes. Payloads
// without verify_hash are always rejected.
func VerifyCallbackData(payload map[string]string, apiKey string) bool {
	verifyHash, ok := payload[VerifyHashField]
	if !ok || strings.TrimSpace(apiKey) == "" {
		return false
	}
	want := signCallbackData(payload, apiKey)
	return hmac.Equal([]byte(want), []byte(verifyHash))
}

// signCallbackData computes the hex signature the provider produces for a
// payload, verify_hash excluded. expire_utc needs no coercion here: form
// values already arrive as their decimal string form.
func signCallbackData(payload map[string]string, apiKey string) string {
	fields := make([]callbackField, 0, len(payload))
	for k, v := range payload {
		if k == VerifyHashField {
			continue
		}
		// tx_urls arrives HTML-entity-encoded but is signed decoded.
		if k == "tx_urls" {
			v = html.UnescapeString(v)
		}
		fields = append(fields, callbackField{key: k, value: v})
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].key < fields[j].key })

	mac := hmac.New(sha1.New, []byte(apiKey))
	mac.Write([]byte(serializeFields(fields)))
	return hex.EncodeToString(mac.Sum(nil))
}
