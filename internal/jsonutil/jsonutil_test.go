package jsonutil

import (
	"bytes"
	"strings"
	"testing"
)

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	in := map[string]any{"a": "x", "n": 1.5}
	data, err := Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	var out map[string]any
	if err := Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out["a"] != "x" || out["n"] != 1.5 {
		t.Errorf("round trip mismatch: %#v", out)
	}
}

func TestMarshalWriteAppendsNewline(t *testing.T) {
	var buf bytes.Buffer
	if err := MarshalWrite(&buf, map[string]string{"k": "v"}); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Errorf("missing newline: %q", buf.String())
	}
}

func TestValid(t *testing.T) {
	if !Valid([]byte(`{"a": 1}`)) {
		t.Error("expected valid")
	}
	if Valid([]byte(`{"a":`)) {
		t.Error("expected invalid")
	}
}
