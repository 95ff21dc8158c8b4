// Package rackbpf holds the generated Go bindings for the rackd XDP
// program: the gateway-watcher that samples the first observed DHCP
// server (IPv4) and router-advertisement source (IPv6) into two
// single-element BPF arrays.
//
// In a full build, rackd_bpfel.o is produced by `bpf2go` compiling the
// rackd-ebpf crate's C-ABI-compatible object with clang/LLVM targeting
// bpfel, and this file's sibling (rackd.go) is generated alongside it.
// That compiler toolchain lives outside this Go module's build (eBPF C
// object compilation, not Go), so rackd_bpfel.o here is a placeholder:
// the loader and map accessors below are hand-written in bpf2go's output
// shape so the rest of the module (internal/gatewaybpf) has a stable,
// idiomatic surface to program against.
package rackbpf
