package partition

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/oba-ldap/obastore/internal/entry"
)

// csnSeq disambiguates CSNs generated within the same microsecond.
var csnSeq uint32

// NewCSN returns a change sequence number in the conventional
// timestamp#changeCount#replicaId#modifierCount layout. Values produced by
// one process sort in generation order, which is all the EntryCSN index
// requires.
func NewCSN(replicaID int) string {
	seq := atomic.AddUint32(&csnSeq, 1) & 0xffffff
	ts := time.Now().UTC().Format("20060102150405.000000") + "Z"
	return fmt.Sprintf("%s#%06x#%03x#%06x", ts, seq, replicaID&0xfff, 0)
}

// StampOperational fills in the operational attributes Add requires when
// the caller has not supplied them: entryUUID (RFC 4530) and entryCSN.
// Attributes already present are left alone, so replicated entries keep the
// identifiers they arrived with.
func StampOperational(e *entry.Entry, replicaID int) {
	if e.GetFirstAttribute(attrEntryUUID) == "" {
		e.SetAttribute(attrEntryUUID, uuid.NewString())
	}
	if e.GetFirstAttribute(attrEntryCSN) == "" {
		e.SetAttribute(attrEntryCSN, NewCSN(replicaID))
	}
}
