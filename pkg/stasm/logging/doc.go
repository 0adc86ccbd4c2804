// Package logging provides a minimal logging facade for the Stasm binding.
//
// The Logger interface wraps the subset of log/slog the binding needs. Two
// implementations ship with the package: an slog-backed one and a zap-backed
// one for applications that already run go.uber.org/zap.
//
//	logger := logging.New(nil) // slog.Default()
//
//	zl, _ := zap.NewProduction()
//	logger = logging.NewZap(zl)
//
//	sess := stasm.New(stasm.Config{Logger: logger})
//
// The binding logs every native call at debug level together with the image
// dimensions, and native failures at warn level with the library's own
// message. Pixel data and landmark coordinates are never logged.
package logging
