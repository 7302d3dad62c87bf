package id_test

import (
	"strings"
	"testing"

	"github.com/xraph/trawl/id"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		newFn  func() id.ID
		prefix string
	}{
		{"ManagerID", id.NewManagerID, "mgr_"},
		{"FlowID", id.NewFlowID, "flow_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.newFn().String()
			if !strings.HasPrefix(got, tt.prefix) {
				t.Errorf("expected prefix %q, got %q", tt.prefix, got)
			}
		})
	}
}

func TestNew(t *testing.T) {
	i := id.New(id.PrefixFlow)
	if i.IsNil() {
		t.Fatal("expected non-nil ID")
	}
	if i.Prefix() != id.PrefixFlow {
		t.Errorf("expected prefix %q, got %q", id.PrefixFlow, i.Prefix())
	}
}

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		newFn   func() id.ID
		parseFn func(string) (id.ID, error)
	}{
		{"ManagerID", id.NewManagerID, id.ParseManagerID},
		{"FlowID", id.NewFlowID, id.ParseFlowID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := tt.newFn()
			parsed, err := tt.parseFn(original.String())
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if parsed.String() != original.String() {
				t.Errorf("round-trip mismatch: %q != %q", parsed.String(), original.String())
			}
		})
	}
}

func TestCrossTypeRejection(t *testing.T) {
	mgr := id.NewManagerID().String()
	if _, err := id.ParseFlowID(mgr); err == nil {
		t.Errorf("ParseFlowID(%q) should reject a manager ID", mgr)
	}
	flow := id.NewFlowID().String()
	if _, err := id.ParseManagerID(flow); err == nil {
		t.Errorf("ParseManagerID(%q) should reject a flow ID", flow)
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{"", "not-a-typeid", "mgr_!!!"} {
		if _, err := id.Parse(input); err == nil {
			t.Errorf("Parse(%q) should fail", input)
		}
	}
}

func TestNilID(t *testing.T) {
	var nilID id.ID
	if !nilID.IsNil() {
		t.Error("zero ID should be nil")
	}
	if nilID.String() != "" {
		t.Errorf("nil ID string should be empty, got %q", nilID.String())
	}
	if nilID.Prefix() != "" {
		t.Errorf("nil ID prefix should be empty, got %q", nilID.Prefix())
	}
}

func TestTextRoundTrip(t *testing.T) {
	original := id.NewFlowID()
	data, err := original.MarshalText()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded id.ID
	if err := decoded.UnmarshalText(data); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded.String() != original.String() {
		t.Errorf("round-trip mismatch: %q != %q", decoded.String(), original.String())
	}

	var nilDecoded id.ID
	if err := nilDecoded.UnmarshalText(nil); err != nil {
		t.Fatalf("unmarshal empty failed: %v", err)
	}
	if !nilDecoded.IsNil() {
		t.Error("unmarshal of empty text should yield nil ID")
	}
}

func TestSQLRoundTrip(t *testing.T) {
	original := id.NewFlowID()
	v, err := original.Value()
	if err != nil {
		t.Fatalf("value failed: %v", err)
	}

	var scanned id.ID
	if err := scanned.Scan(v); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if scanned.String() != original.String() {
		t.Errorf("round-trip mismatch: %q != %q", scanned.String(), original.String())
	}

	var nilScanned id.ID
	if err := nilScanned.Scan(nil); err != nil {
		t.Fatalf("scan nil failed: %v", err)
	}
	if !nilScanned.IsNil() {
		t.Error("scan of NULL should yield nil ID")
	}

	if err := nilScanned.Scan(42); err == nil {
		t.Error("scan of int should fail")
	}
}
