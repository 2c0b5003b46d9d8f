// Package kvargs parses flat driver argument strings into fixed-capacity
// key/value stores.
//
// # Argument Format
//
// An argument string is a comma separated list of items:
//
//	key1=value1,key2,key3=[a,b,c]
//
// Where:
//   - A key is one or more bytes other than ',' and '='.
//   - An item without '=' is an only-key entry: its value is absent, which
//     is distinct from an explicitly empty value ("key=").
//   - A value is a concatenation of bare runs and bracketed lists. Commas
//     inside "[...]" do not separate items, and the brackets are kept in the
//     stored value.
//
// The whole input must match; there is no best-effort result. A store holds
// at most MaxEntries entries.
//
// # Usage
//
//	store, err := kvargs.Parse("iface=eth0,queues=[0,1,2],promisc", nil)
//	if err != nil {
//	    return err
//	}
//	defer store.Release()
//
//	iface, _ := store.Get("iface")          // "eth0"
//	queues, _ := store.Get("queues")        // "[0,1,2]"
//	n := store.Count("promisc")             // 1
//
//	err = store.ProcessOpt("", kvargs.HandlerFunc(func(key string, value *string) error {
//	    ...
//	}))
//
// # Concurrency
//
// A Store is immutable after Parse returns. Concurrent readers are safe as
// long as nobody calls Release while they run.
package kvargs
