// Package devargs loads device-argument files.
//
// A device-argument file lists devices together with the kvargs argument
// string each one is configured with, the keys it accepts and optional
// terminator bytes. Files are YAML or TOML:
//
//	devices:
//	  - name: net_pcap0
//	    args: iface=eth0,promisc
//	    valid_keys: [iface, promisc]
//
//	[[devices]]
//	name = "net_pcap0"
//	args = "iface=eth0,promisc"
//	valid_keys = ["iface", "promisc"]
//
// Omitting valid_keys accepts every key. An explicitly empty list accepts
// none.
package devargs
