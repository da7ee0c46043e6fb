package schema

import "testing"

func TestNewObjectClass(t *testing.T) {
	oc := NewObjectClass("2.5.6.6", "person")
	if oc.OID != "2.5.6.6" {
		t.Errorf("OID = %q, want %q", oc.OID, "2.5.6.6")
	}
	if oc.Name != "person" {
		t.Errorf("Name = %q, want %q", oc.Name, "person")
	}
	if !oc.IsStructural() {
		t.Error("default kind should be structural")
	}
}

func TestObjectClassKindString(t *testing.T) {
	tests := []struct {
		kind ObjectClassKind
		want string
	}{
		{ObjectClassAbstract, "ABSTRACT"},
		{ObjectClassStructural, "STRUCTURAL"},
		{ObjectClassAuxiliary, "AUXILIARY"},
		{ObjectClassKind(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestObjectClassMustMayAttributes(t *testing.T) {
	oc := NewObjectClass("2.5.6.6", "person")
	oc.Must = []string{"cn", "sn"}
	oc.May = []string{"description"}

	if !oc.HasMustAttribute("cn") {
		t.Error("cn should be a MUST attribute")
	}
	if !oc.HasMustAttribute("CN") {
		t.Error("MUST membership should be case-insensitive")
	}
	if oc.HasMustAttribute("description") {
		t.Error("description is MAY, not MUST")
	}
	if !oc.HasMayAttribute("description") {
		t.Error("description should be a MAY attribute")
	}
	if !oc.AllowsAttribute("sn") || !oc.AllowsAttribute("description") {
		t.Error("AllowsAttribute should cover both MUST and MAY")
	}
	if oc.AllowsAttribute("mail") {
		t.Error("mail is neither MUST nor MAY")
	}
}

func TestObjectClassAddName(t *testing.T) {
	oc := NewObjectClass("2.5.6.6", "person")
	oc.AddName("Person")
	oc.AddName("Person")
	if len(oc.Names) != 2 {
		t.Errorf("Names = %v, want [person Person]", oc.Names)
	}
}
