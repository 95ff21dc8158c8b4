package rackbpf

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/cilium/ebpf"
)

//go:embed rackd_bpfel.o
var rackdBytes []byte

// Objects holds the program and maps loaded from the rackd XDP object,
// mirroring bpf2go's generated Objects struct.
type Objects struct {
	Program     *ebpf.Program `ebpf:"program"`
	Ipv4Gateway *ebpf.Map     `ebpf:"IPV4_GATEWAY"`
	Ipv6Gateway *ebpf.Map     `ebpf:"IPV6_GATEWAY"`
}

// Close releases the program and maps.
func (o *Objects) Close() error {
	var errs []error
	if o.Program != nil {
		errs = append(errs, o.Program.Close())
	}
	if o.Ipv4Gateway != nil {
		errs = append(errs, o.Ipv4Gateway.Close())
	}
	if o.Ipv6Gateway != nil {
		errs = append(errs, o.Ipv6Gateway.Close())
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// LoadObjects parses the embedded collection spec and loads it into the
// kernel, matching bpf2go's LoadRackdObjects.
func LoadObjects(opts *ebpf.CollectionOptions) (*Objects, error) {
	spec, err := ebpf.LoadCollectionSpecFromReader(bytes.NewReader(rackdBytes))
	if err != nil {
		return nil, fmt.Errorf("rackbpf: load collection spec: %w", err)
	}
	var objs Objects
	if err := spec.LoadAndAssign(&objs, opts); err != nil {
		return nil, fmt.Errorf("rackbpf: load and assign: %w", err)
	}
	return &objs, nil
}
