package recordcodec

import (
	"net/url"
	"reflect"
	"testing"
)

type record struct {
	ID       int            `json:"id"`
	Code     string         `json:"code"`
	Username string         `json:"username"`
	Nested   map[string]any `json:"nested,omitempty"`
}

func TestRoundTrip(t *testing.T) {
	original := record{
		ID:       7,
		Code:     "E7",
		Username: "Ngọc Ánh",
		Nested:   map[string]any{"taxNumber": "123-456", "phoneNumber": "0901234567"},
	}

	token, err := Encode(original)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	var decoded record
	if !Decode(token, &decoded) {
		t.Fatal("decode reported failure for a valid token")
	}
	if !reflect.DeepEqual(original, decoded) {
		t.Fatalf("round trip mismatch: %+v != %+v", decoded, original)
	}
}

func TestTokenIsQuerySafe(t *testing.T) {
	token, err := Encode(map[string]any{"name": "a+b/c=d?&#", "blob": "\x00\x01\xff"})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if escaped := url.QueryEscape(token); escaped != token {
		t.Fatalf("token requires escaping: %q vs %q", token, escaped)
	}
}

func TestDecodeMalformedReturnsFalse(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"not base64", "%%%not-base64%%%"},
		{"base64 but not json", "bm90LWpzb24"},
		{"truncated payload", "eyJpZCI6"},
		{"standard alphabet padding", "eyJpZCI6MX0="},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out record
			if Decode(tc.token, &out) {
				t.Fatal("expected decode failure")
			}
		})
	}
}

func TestDecodeLeavesTargetUntouchedOnFailure(t *testing.T) {
	out := record{ID: 42, Code: "keep"}
	if Decode("!!!", &out) {
		t.Fatal("expected decode failure")
	}
	if out.ID != 42 || out.Code != "keep" {
		t.Fatalf("target mutated on failure: %+v", out)
	}
}
