package devargs

import (
	"fmt"

	"github.com/aatifsyed/dpdk/pkg/kvargs"
)

// Result is the outcome of parsing one device's arguments.
type Result struct {
	Device Device
	// Store is nil when Err is set.
	Store *kvargs.Store
	Err   error
}

// OK reports whether the device arguments parsed.
func (r Result) OK() bool {
	return r.Err == nil
}

// Parse parses the device's argument string with p.
func (d Device) Parse(p *kvargs.Parser) (*kvargs.Store, error) {
	store, err := p.Parse(d.Args, kvargs.ParseOptions{
		ValidKeys: d.ValidKeys,
		ValidEnds: d.ValidEnds,
	})
	if err != nil {
		if d.LineNumber > 0 {
			return nil, fmt.Errorf("line %d: device %q: %w", d.LineNumber, d.Name, err)
		}
		return nil, fmt.Errorf("device %q: %w", d.Name, err)
	}
	return store, nil
}

// Check parses every device in f and returns one result per device, in
// file order. The caller owns the returned stores.
func (f *File) Check(p *kvargs.Parser) []Result {
	results := make([]Result, 0, len(f.Devices))
	for _, d := range f.Devices {
		store, err := d.Parse(p)
		results = append(results, Result{Device: d, Store: store, Err: err})
	}
	return results
}

// Failed returns the results that did not parse.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.OK() {
			failed = append(failed, r)
		}
	}
	return failed
}
