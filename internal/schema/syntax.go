package schema

// Syntax describes an LDAP attribute syntax: the OID under which attribute
// types declare their value format. The registry only records syntaxes so
// definitions that reference them resolve; value-format enforcement
// belongs to the layers above the storage engine.
type Syntax struct {
	OID         string // e.g. "1.3.6.1.4.1.1466.115.121.1.15"
	Description string // e.g. "Directory String"
}

// NewSyntax creates a Syntax with the given OID and description.
func NewSyntax(oid, description string) *Syntax {
	return &Syntax{OID: oid, Description: description}
}

// Common LDAP syntax OIDs.
const (
	// SyntaxDirectoryString is the OID for Directory String syntax (UTF-8 string).
	SyntaxDirectoryString = "1.3.6.1.4.1.1466.115.121.1.15"

	// SyntaxDN is the OID for Distinguished Name syntax.
	SyntaxDN = "1.3.6.1.4.1.1466.115.121.1.12"

	// SyntaxInteger is the OID for Integer syntax.
	SyntaxInteger = "1.3.6.1.4.1.1466.115.121.1.27"

	// SyntaxBoolean is the OID for Boolean syntax.
	SyntaxBoolean = "1.3.6.1.4.1.1466.115.121.1.7"

	// SyntaxOctetString is the OID for Octet String syntax (binary data).
	SyntaxOctetString = "1.3.6.1.4.1.1466.115.121.1.40"

	// SyntaxGeneralizedTime is the OID for Generalized Time syntax.
	SyntaxGeneralizedTime = "1.3.6.1.4.1.1466.115.121.1.24"

	// SyntaxOID is the OID for OID syntax.
	SyntaxOID = "1.3.6.1.4.1.1466.115.121.1.38"

	// SyntaxTelephoneNumber is the OID for Telephone Number syntax.
	SyntaxTelephoneNumber = "1.3.6.1.4.1.1466.115.121.1.50"

	// SyntaxIA5String is the OID for IA5 String syntax (ASCII).
	SyntaxIA5String = "1.3.6.1.4.1.1466.115.121.1.26"

	// SyntaxPrintableString is the OID for Printable String syntax.
	SyntaxPrintableString = "1.3.6.1.4.1.1466.115.121.1.44"

	// SyntaxNumericString is the OID for Numeric String syntax.
	SyntaxNumericString = "1.3.6.1.4.1.1466.115.121.1.36"

	// SyntaxBitString is the OID for Bit String syntax.
	SyntaxBitString = "1.3.6.1.4.1.1466.115.121.1.6"

	// SyntaxUUID is the OID for UUID syntax.
	SyntaxUUID = "1.3.6.1.1.16.1"
)
