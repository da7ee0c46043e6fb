package partition

import "github.com/oba-ldap/obastore/internal/table"

// IDIndexView is the read-only query surface handed out for OneLevel,
// SubLevel, OneAlias and SubAlias, the id -> {id} system indexes that
// don't share index.Index's string-keyed shape.
type IDIndexView interface {
	Has(k, v int64) bool
	ForwardValueCursor(k int64) table.ValueCursor[int64]
	ReverseValueCursor(v int64) table.ValueCursor[int64]
	Count() int
}
