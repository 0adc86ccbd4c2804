// Package internalcheck holds repository policy tests.
//
// The tests load the module's packages with golang.org/x/tools/go/packages
// and inspect their source: cgo stays confined to the backend package, and
// library packages report failures through errors instead of terminating the
// process. The package has no API.
package internalcheck
