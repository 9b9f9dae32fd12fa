package okx

import (
	"testing"
	"time"
)

func TestSignKnownVector(t *testing.T) {
	got := Sign("secret", "2020-12-08T09:08:57.715Z", "GET", "/api/v5/account/balance?ccy=BTC", nil)
	want := "wpDvCwYCprcMQsQkxWJiWy+YADoQE4ep+OEKKLimMoY="
	if got != want {
		t.Errorf("Sign() = %s, want %s", got, want)
	}
}

func TestSignDeterminism(t *testing.T) {
	body := []byte(`{"instId":"BTC-USDT","tdMode":"cash","side":"buy","ordType":"market","sz":"0.001"}`)
	a := Sign("secret", "2024-01-02T03:04:05.000Z", "POST", "/api/v5/trade/order", body)
	b := Sign("secret", "2024-01-02T03:04:05.000Z", "POST", "/api/v5/trade/order", body)
	if a != b {
		t.Errorf("same inputs produced different signatures: %s vs %s", a, b)
	}
}

func TestSignSensitivity(t *testing.T) {
	base := Sign("secret", "2024-01-02T03:04:05.000Z", "POST", "/api/v5/trade/order", []byte(`{"sz":"0.001"}`))

	cases := []struct {
		name                          string
		secret, ts, method, path, body string
	}{
		{"secret", "other", "2024-01-02T03:04:05.000Z", "POST", "/api/v5/trade/order", `{"sz":"0.001"}`},
		{"timestamp", "secret", "2024-01-02T03:04:06.000Z", "POST", "/api/v5/trade/order", `{"sz":"0.001"}`},
		{"method", "secret", "2024-01-02T03:04:05.000Z", "GET", "/api/v5/trade/order", `{"sz":"0.001"}`},
		{"path", "secret", "2024-01-02T03:04:05.000Z", "POST", "/api/v5/trade/orders", `{"sz":"0.001"}`},
		{"body", "secret", "2024-01-02T03:04:05.000Z", "POST", "/api/v5/trade/order", `{"sz":"0.002"}`},
	}
	for _, c := range cases {
		got := Sign(c.secret, c.ts, c.method, c.path, []byte(c.body))
		if got == base {
			t.Errorf("changing %s did not change the signature", c.name)
		}
	}
}

func TestSignUppercasesMethod(t *testing.T) {
	a := Sign("secret", "2024-01-02T03:04:05.000Z", "post", "/api/v5/trade/order", nil)
	b := Sign("secret", "2024-01-02T03:04:05.000Z", "POST", "/api/v5/trade/order", nil)
	if a != b {
		t.Error("method case should not affect the signature")
	}
}

func TestTimestampFormat(t *testing.T) {
	ts := Timestamp(time.Date(2020, 12, 8, 9, 8, 57, 715000000, time.UTC))
	if ts != "2020-12-08T09:08:57.715Z" {
		t.Errorf("Timestamp() = %s", ts)
	}
}
