package core

import (
	"encoding/json"
	"testing"
)

func TestParseOwner(t *testing.T) {
	cases := []struct {
		in         string
		user       bool
		unassigned bool
		shared     bool
	}{
		{"Alice", true, false, false},
		{"unassigned", false, true, false},
		{"shared", false, false, true},
		{"", false, true, false},
	}
	for _, tc := range cases {
		o := ParseOwner(tc.in)
		if o.IsUser() != tc.user || o.IsUnassigned() != tc.unassigned || o.IsShared() != tc.shared {
			t.Fatalf("ParseOwner(%q) classified wrong: %+v", tc.in, o)
		}
	}
}

func TestOwnerRoundTripJSON(t *testing.T) {
	for _, o := range []Owner{UserOwner("Bob"), Unassigned(), SharedPool()} {
		data, err := json.Marshal(o)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var back Owner
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if back != o {
			t.Fatalf("round trip changed owner: %v -> %v", o, back)
		}
	}
}

func TestOwnerIs(t *testing.T) {
	if !UserOwner("Alice").Is("Alice") {
		t.Fatalf("expected owner match")
	}
	if UserOwner("Alice").Is("Bob") {
		t.Fatalf("unexpected owner match")
	}
	// Sentinels never match a user, even one perversely named after them.
	if Unassigned().Is("unassigned") {
		t.Fatalf("sentinel matched user name")
	}
}
