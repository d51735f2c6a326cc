package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestResponseWireShapes(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		wantMulti bool
		wantNull  bool
		wantOut   string
	}{
		{"null", `null`, false, true, `null`},
		{"zero index", `0`, false, false, `0`},
		{"index", `3`, false, false, `3`},
		{"empty set", `[]`, true, false, `[]`},
		{"set sorted and deduplicated", `[4, 1, 4]`, true, false, `[1,4]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Response
			if err := json.Unmarshal([]byte(tt.in), &r); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if r.IsMulti() != tt.wantMulti || r.IsNull() != tt.wantNull {
				t.Errorf("multi=%v null=%v", r.IsMulti(), r.IsNull())
			}
			out, err := json.Marshal(r)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if string(out) != tt.wantOut {
				t.Errorf("Marshal = %s, want %s", out, tt.wantOut)
			}
		})
	}
}

func TestResponseInsideStruct(t *testing.T) {
	type envelope struct {
		Response Response `json:"response"`
	}

	var missing envelope
	if err := json.Unmarshal([]byte(`{}`), &missing); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !missing.Response.IsNull() {
		t.Errorf("missing field should decode as null")
	}

	var bad envelope
	if err := json.Unmarshal([]byte(`{"response":"x"}`), &bad); err == nil {
		t.Errorf("string response accepted")
	}

	answers := []Response{NoResponse(), SingleResponse(2), MultiResponse(0, 3)}
	raw, err := json.Marshal(answers)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var back []Response
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(back, answers) {
		t.Errorf("round trip = %v, want %v", back, answers)
	}
}

func TestParseKind(t *testing.T) {
	if k, fb := ParseKind("TRUE-FALSE"); k != KindTrueFalse || fb {
		t.Errorf("ParseKind(TRUE-FALSE) = %q, %v", k, fb)
	}
	if k, fb := ParseKind("matching"); k != KindSingle || !fb {
		t.Errorf("ParseKind(matching) = %q, %v", k, fb)
	}
}
