package schema

import "testing"

func TestNewSyntax(t *testing.T) {
	syn := NewSyntax(SyntaxDirectoryString, "Directory String")
	if syn.OID != SyntaxDirectoryString {
		t.Errorf("OID = %q, want %q", syn.OID, SyntaxDirectoryString)
	}
	if syn.Description != "Directory String" {
		t.Errorf("Description = %q, want %q", syn.Description, "Directory String")
	}
}

func TestSyntaxConstants(t *testing.T) {
	tests := []struct {
		name string
		oid  string
		want string
	}{
		{"DirectoryString", SyntaxDirectoryString, "1.3.6.1.4.1.1466.115.121.1.15"},
		{"DN", SyntaxDN, "1.3.6.1.4.1.1466.115.121.1.12"},
		{"Integer", SyntaxInteger, "1.3.6.1.4.1.1466.115.121.1.27"},
		{"Boolean", SyntaxBoolean, "1.3.6.1.4.1.1466.115.121.1.7"},
		{"OctetString", SyntaxOctetString, "1.3.6.1.4.1.1466.115.121.1.40"},
		{"GeneralizedTime", SyntaxGeneralizedTime, "1.3.6.1.4.1.1466.115.121.1.24"},
		{"UUID", SyntaxUUID, "1.3.6.1.1.16.1"},
	}
	for _, tt := range tests {
		if tt.oid != tt.want {
			t.Errorf("Syntax%s = %q, want %q", tt.name, tt.oid, tt.want)
		}
	}
}

func TestDefaultSchemaRegistersSyntaxes(t *testing.T) {
	s := LoadDefaultSchema()
	for _, oid := range []string{SyntaxDirectoryString, SyntaxDN, SyntaxUUID} {
		if s.GetSyntax(oid) == nil {
			t.Errorf("default schema is missing syntax %s", oid)
		}
	}
}
