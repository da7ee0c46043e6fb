// Package schema is the attribute-type, object-class, matching-rule and
// syntax registry the partition engine consults. The engine treats it as
// read-only collaborator state: built once, passed to the partition at
// Init, never mutated afterwards.
//
// The registry answers three questions for the storage core:
//
//   - attribute-type lookup by name or OID (GetAttributeType), including
//     alias names ("commonName" and "cn" resolve to the same descriptor);
//   - whether an attribute can back an equality index, and with which
//     value normalizer (EqualityNormalizer); an attribute without an
//     equality matching rule is refused at index-construction time;
//   - DN canonicalization (DNNormalizer), which folds each AVA's type to
//     lowercase and applies the type's equality normalizer to its value.
//
// Definitions use RFC 4512 description syntax. LoadDefaultSchema installs
// the standard types from RFC 4512/4519/4524 plus the operational
// attributes the engine's system indexes require (entryUUID, entryCSN);
// LoadSchemaFromLDIF parses additional definitions from a subschema LDIF
// document. SUP inheritance is resolved at load time so a derived type
// (cn SUP name) carries its superior's syntax and matching rules.
package schema
