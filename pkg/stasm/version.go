package stasm

import "github.com/mjszczep/stasm-go/pkg/stasm/internal/backend"

var (
	Version         = "v0.2.1"
	UpstreamVersion = "4.1.0"
)

// WrapperVersion returns the semantic version of the Go binding, populated at
// build time via ldflags.
func WrapperVersion() string {
	return Version
}

// LibraryVersion returns stasm_VERSION from the linked native library, or
// UpstreamVersion when the bindings are not built.
func LibraryVersion() string {
	if v := backend.Version(); v != "" {
		return v
	}
	return UpstreamVersion
}
