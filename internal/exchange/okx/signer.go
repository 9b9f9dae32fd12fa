package okx

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"time"
)

// Timestamp formats t the way OKX expects in OK-ACCESS-TIMESTAMP:
// ISO-8601 UTC with millisecond precision.
func Timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

// Sign computes the OK-ACCESS-SIGN value for a request:
// base64(HMAC-SHA256(timestamp + METHOD + path + body, secret)).
//
// The body must be the exact byte sequence that will be transmitted;
// any re-serialization between signing and sending invalidates the
// signature. The timestamp is part of the signed material, so a
// signature must be recomputed for every request.
func Sign(secret, timestamp, method, path string, body []byte) string {
	prehash := timestamp + strings.ToUpper(method) + path + string(body)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(prehash))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
