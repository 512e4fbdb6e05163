package plisio

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"testing"
)

func TestSignCallbackDataCanonicalEncoding(t *testing.T) {
	payload := map[string]string{
		"order_number": "1001",
		"status":       "completed",
		"tx_urls":      "https://blockchair.com/?a=1&amp;b=2",
	}

	// Keys sorted ascending, tx_urls entity-decoded, PHP serialize() framing.
	canonical := `a:3:{s:12:"order_number";s:4:"1001";s:6:"status";s:9:"completed";s:7:"tx_urls";s:31:"https://blockchair.com/?a=1&b=2";}`

	mac := hmac.New(sha1.New, []byte("store-api-key"))
	mac.Write([]byte(canonical))
	want := hex.EncodeToString(mac.Sum(nil))

	if got := signCallbackData(payload, "store-api-key"); got != want {
		t.Fatalf("signCallbackData = %q, want %q", got, want)
	}
}

func TestVerifyCallbackData(t *testing.T) {
	const apiKey = "store-api-key"
	payload := map[string]string{
		"order_number": "1001",
		"status":       "completed",
		"amount":       "0.0025",
		"currency":     "BTC",
		"comment":      "",
		"expire_utc":   "1735689600",
	}
	payload[VerifyHashField] = signCallbackData(payload, apiKey)

	if !VerifyCallbackData(payload, apiKey) {
		t.Fatalf("expected valid signature to verify")
	}

	// One altered byte must fail.
	tampered := make(map[string]string, len(payload))
	for k, v := range payload {
		tampered[k] = v
	}
	hash := tampered[VerifyHashField]
	if hash[0] == 'a' {
		tampered[VerifyHashField] = "b" + hash[1:]
	} else {
		tampered[VerifyHashField] = "a" + hash[1:]
	}
	if VerifyCallbackData(tampered, apiKey) {
		t.Fatalf("expected tampered signature to fail")
	}

	// Changing a signed field must fail too.
	mutated := make(map[string]string, len(payload))
	for k, v := range payload {
		mutated[k] = v
	}
	mutated["amount"] = "9999.00"
	if VerifyCallbackData(mutated, apiKey) {
		t.Fatalf("expected mutated payload to fail verification")
	}

	if VerifyCallbackData(payload, "wrong-key") {
		t.Fatalf("expected wrong key to fail verification")
	}
	if VerifyCallbackData(payload, "") {
		t.Fatalf("expected empty key to fail verification")
	}
}

func TestVerifyCallbackDataMissingHash(t *testing.T) {
	payload := map[string]string{
		"order_number": "1001",
		"status":       "completed",
	}
	if VerifyCallbackData(payload, "store-api-key") {
		t.Fatalf("expected payload without verify_hash to fail")
	}
}
