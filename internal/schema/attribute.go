package schema

// AttributeUsage defines how an attribute is used in the directory:
// whether it belongs to user applications or to the directory's own
// operation.
type AttributeUsage int

const (
	// UserApplications is the default usage: a user attribute that
	// applications read and write.
	UserApplications AttributeUsage = iota

	// DirectoryOperation marks an operational attribute the directory
	// maintains for itself (entryUUID, entryCSN, timestamps).
	DirectoryOperation

	// DistributedOperation marks an operational attribute shared across
	// servers.
	DistributedOperation

	// DSAOperation marks an operational attribute local to a single
	// server.
	DSAOperation
)

// String returns the RFC 4512 keyword for the usage.
func (u AttributeUsage) String() string {
	switch u {
	case UserApplications:
		return "userApplications"
	case DirectoryOperation:
		return "directoryOperation"
	case DistributedOperation:
		return "distributedOperation"
	case DSAOperation:
		return "dSAOperation"
	default:
		return "unknown"
	}
}

// IsOperational reports whether this usage marks an operational attribute.
func (u AttributeUsage) IsOperational() bool {
	return u != UserApplications
}

// AttributeType is one attribute type definition: its names, value syntax,
// matching rules, and constraints.
type AttributeType struct {
	OID         string         // Object Identifier (e.g. "2.5.4.3")
	Name        string         // Primary name (e.g. "cn")
	Names       []string       // All names including aliases (e.g. ["cn", "commonName"])
	Desc        string         // Human-readable description
	Obsolete    bool           // Whether this attribute type is obsolete
	Superior    string         // Parent attribute type name or OID
	Equality    string         // Matching rule for equality matching
	Ordering    string         // Matching rule for ordering matching
	Substring   string         // Matching rule for substring matching
	Syntax      string         // Syntax OID (e.g. "1.3.6.1.4.1.1466.115.121.1.15")
	SingleValue bool           // If true, the attribute holds at most one value
	Collective  bool           // If true, the attribute is collective
	NoUserMod   bool           // If true, users cannot modify the attribute
	Usage       AttributeUsage // How the attribute is used
}

// NewAttributeType creates an AttributeType with the given OID and name
// and UserApplications usage.
func NewAttributeType(oid, name string) *AttributeType {
	return &AttributeType{
		OID:   oid,
		Name:  name,
		Names: []string{name},
		Usage: UserApplications,
	}
}

// IsOperational reports whether this is an operational attribute.
func (at *AttributeType) IsOperational() bool {
	return at.Usage.IsOperational()
}

// IsSingleValued reports whether this attribute holds at most one value.
func (at *AttributeType) IsSingleValued() bool {
	return at.SingleValue
}

// HasEqualityMatching reports whether the attribute declares an equality
// matching rule, the precondition for building an index over it.
func (at *AttributeType) HasEqualityMatching() bool {
	return at.Equality != ""
}

// AddName adds an alias name, ignoring duplicates.
func (at *AttributeType) AddName(name string) {
	for _, n := range at.Names {
		if n == name {
			return
		}
	}
	at.Names = append(at.Names, name)
}

// SetMatchingRules sets the equality, ordering and substring matching
// rules in one call.
func (at *AttributeType) SetMatchingRules(equality, ordering, substring string) {
	at.Equality = equality
	at.Ordering = ordering
	at.Substring = substring
}
