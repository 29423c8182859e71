package corpus

import (
	"encoding/json"
	"testing"
)

func TestPostingJSONRoundTrip(t *testing.T) {
	cases := []Posting{
		{Tf: 1, Important: false},
		{Tf: 7, Important: true},
	}
	for _, want := range cases {
		data, err := json.Marshal(want)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}

		var got Posting
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if got != want {
			t.Errorf("round trip mismatch: got %+v, want %+v", got, want)
		}
	}
}

func TestPostingMarshalFormat(t *testing.T) {
	data, _ := json.Marshal(Posting{Tf: 3, Important: true})
	if string(data) != "[3,1]" {
		t.Errorf("expected [3,1], got %s", data)
	}
	data, _ = json.Marshal(Posting{Tf: 3, Important: false})
	if string(data) != "[3,0]" {
		t.Errorf("expected [3,0], got %s", data)
	}
}

func TestShardLetterAndShardable(t *testing.T) {
	if !shardable("fox") || shardable("42fox") || shardable("") {
		t.Error("shardable did not match the a-z-first-character invariant")
	}
	if shardLetter("fox") != 'F' {
		t.Errorf("expected shard F, got %c", shardLetter("fox"))
	}
}
