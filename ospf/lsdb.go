package ospf

import (
	"net/netip"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/ospfsim/ospfsim/common"
)

type LSDBKey struct {
	Type              LSType
	LinkStateID       netip.Addr
	AdvertisingRouter common.RouterID
}

// lsdb holds the single currently accepted instance of each LSA identity.
type lsdb map[LSDBKey]LSA

func newLSDB() lsdb {
	return lsdb(make(map[LSDBKey]LSA))
}

// install applies the freshness rule: a new identity is always accepted, a
// known identity only if the incoming sequence number is strictly greater
// than the stored one. Replacement is whole-record substitution. It reports
// whether the LSA was installed.
func (db lsdb) install(l LSA) bool {
	key := l.Header().Key()

	cur, ok := db[key]
	if ok && l.Header().SequenceNumber <= cur.Header().SequenceNumber {
		return false
	}

	db[key] = l

	return true
}

func (db lsdb) get(key LSDBKey) LSA {
	return db[key]
}

// sortedKeys returns the database's keys in a stable order, so that walks
// over the LSDB are a pure function of its contents.
func (db lsdb) sortedKeys() []LSDBKey {
	keys := maps.Keys(db)
	slices.SortFunc(keys, func(a, b LSDBKey) int {
		if a.Type != b.Type {
			return int(a.Type) - int(b.Type)
		}
		if c := a.LinkStateID.Compare(b.LinkStateID); c != 0 {
			return c
		}

		switch {
		case a.AdvertisingRouter < b.AdvertisingRouter:
			return -1
		case a.AdvertisingRouter > b.AdvertisingRouter:
			return 1
		default:
			return 0
		}
	})

	return keys
}

func (db lsdb) routerLSAs() []*RouterLSA {
	var lsas []*RouterLSA
	for _, key := range db.sortedKeys() {
		if lsa, ok := db[key].(*RouterLSA); ok {
			lsas = append(lsas, lsa)
		}
	}

	return lsas
}

func (db lsdb) networkLSAs() []*NetworkLSA {
	var lsas []*NetworkLSA
	for _, key := range db.sortedKeys() {
		if lsa, ok := db[key].(*NetworkLSA); ok {
			lsas = append(lsas, lsa)
		}
	}

	return lsas
}
