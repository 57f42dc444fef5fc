package client

import (
	"encoding/base64"
	"testing"
)

func b64(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }

func TestDecodeSummaryObjectRoot(t *testing.T) {
	doc := decodeSummary(b64(`{"stp":{"ttl":5000}}`))
	if doc == nil {
		t.Fatal("expected document")
	}
	stp, ok := doc.Doc("stp")
	if !ok || stp.Int("ttl") != 5000 {
		t.Fatalf("unexpected document %v", doc)
	}
}

func TestDecodeSummaryListRoot(t *testing.T) {
	doc := decodeSummary(b64(`[{"slp":{"dp":60}},{"slp":{"dp":1}}]`))
	if doc == nil {
		t.Fatal("expected first list element")
	}
	slp, _ := doc.Doc("slp")
	if slp.Int("dp") != 60 {
		t.Fatalf("wrong element picked: %v", doc)
	}
}

func TestDecodeSummaryAbsence(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"not base64", "!!!not-base64!!!"},
		{"not json", b64("{{{")},
		{"empty list", b64("[]")},
		{"scalar root", b64("42")},
		{"string root", b64(`"hello"`)},
		{"empty input", ""},
	}
	for _, tc := range cases {
		if got := decodeSummary(tc.in); got != nil {
			t.Errorf("%s: expected nil, got %v", tc.name, got)
		}
	}
}

func TestDecodeSummaryIdempotent(t *testing.T) {
	in := b64(`{"stp":{"ttl":1}}`)
	first := decodeSummary(in)
	second := decodeSummary(in)
	if first == nil || second == nil || first.Int("x") != second.Int("x") {
		t.Fatal("decode not idempotent")
	}
	stp1, _ := first.Doc("stp")
	stp2, _ := second.Doc("stp")
	if stp1.Int("ttl") != stp2.Int("ttl") {
		t.Fatal("decode not idempotent")
	}
}
