package returns

import (
	"bytes"
	"strings"
	"testing"
)

const sampleLedger = `
{"directive":"transaction","date":"2020-01-01","narration":"deposit","postings":[{"account":"Assets:Checking","amount":-1000,"currency":"USD"},{"account":"Brokerage:Assets","amount":1000,"currency":"USD"}]}
{"directive":"price","date":"2020-06-01","currency":"HOOL","price":320.5,"quote":"USD"}
{"directive":"transaction","date":"2020-01-02","narration":"buy","postings":[{"account":"Brokerage:Assets","amount":2,"currency":"HOOL","lot":{"cost":500,"currency":"USD","date":"2020-01-02"}},{"account":"Brokerage:Assets","amount":-1000,"currency":"USD"}]}
`

func TestDecodeDirectives(t *testing.T) {
	entries, err := DecodeDirectives(strings.NewReader(sampleLedger))
	if err != nil {
		t.Fatalf("DecodeDirectives() failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("decoded %d directives, want 3", len(entries))
	}

	// entries come out chronologically sorted
	if entries[0].When() != day(t, "2020-01-01") ||
		entries[1].When() != day(t, "2020-01-02") ||
		entries[2].When() != day(t, "2020-06-01") {
		t.Errorf("directives are not sorted: %v %v %v",
			entries[0].When(), entries[1].When(), entries[2].When())
	}

	txn, ok := entries[1].(*Transaction)
	if !ok {
		t.Fatalf("entry 1 is %T, want *Transaction", entries[1])
	}
	lot := txn.Postings[0].Position.Cost
	if lot == nil || !lot.Cost.Equal(Q(500)) || lot.Currency != "USD" || lot.Date != day(t, "2020-01-02") {
		t.Errorf("decoded lot = %v, want {500 USD / 2020-01-02}", lot)
	}

	price, ok := entries[2].(*Price)
	if !ok {
		t.Fatalf("entry 2 is %T, want *Price", entries[2])
	}
	if price.Currency != "HOOL" || !price.Value.Equal(M(320.5, "USD")) {
		t.Errorf("decoded price = %+v, want 320.5 USD per HOOL", price)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	entries, err := DecodeDirectives(strings.NewReader(sampleLedger))
	if err != nil {
		t.Fatalf("DecodeDirectives() failed: %v", err)
	}

	var buf bytes.Buffer
	if err := EncodeDirectives(&buf, entries); err != nil {
		t.Fatalf("EncodeDirectives() failed: %v", err)
	}
	again, err := DecodeDirectives(&buf)
	if err != nil {
		t.Fatalf("DecodeDirectives() of encoded output failed: %v", err)
	}
	if len(again) != len(entries) {
		t.Fatalf("round trip lost directives: %d != %d", len(again), len(entries))
	}
	for i := range entries {
		if entries[i].When() != again[i].When() {
			t.Errorf("directive %d date changed through round trip", i)
		}
	}
}

func TestDecodeDirectivesRejectsMalformedLines(t *testing.T) {
	cases := []struct {
		name string
		line string
	}{
		{"not json", "deposit 1000 USD"},
		{"unknown directive", `{"directive":"balance","date":"2020-01-01"}`},
		{"bad date", `{"directive":"price","date":"tomorrow","currency":"HOOL","price":1,"quote":"USD"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeDirectives(strings.NewReader(tc.line)); err == nil {
				t.Error("DecodeDirectives() accepted a malformed line")
			}
		})
	}
}
