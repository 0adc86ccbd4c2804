package stasm

import (
	"os"

	"github.com/mjszczep/stasm-go/pkg/stasm/logging"
)

// DefaultDataDir is where the Haar cascade XML files are looked up when
// neither Config.DataDir nor STASM_DATADIR name a directory. Override it at
// link time with -ldflags "-X github.com/mjszczep/stasm-go/pkg/stasm.DefaultDataDir=...".
var DefaultDataDir = "/usr/local/share/stasm/data"

// DataDirEnv names the environment variable consulted for the data
// directory.
const DataDirEnv = "STASM_DATADIR"

// Config holds the defaults a Session applies to native calls.
type Config struct {
	// DataDir is the directory holding the Haar cascade XML files. Empty
	// means STASM_DATADIR, then DefaultDataDir.
	DataDir string

	// Trace asks the native library to trace to stdout and stasm.log when
	// the Session is initialised through InitDefault.
	Trace bool

	// Logger receives debug and warning records for native calls. Nil means
	// logging.New(nil).
	Logger logging.Logger
}

func (c Config) dataDir() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	if dir := os.Getenv(DataDirEnv); dir != "" {
		return dir
	}
	return DefaultDataDir
}

// OpenOptions configures OpenImage.
type OpenOptions struct {
	// DebugPath names the image file in native trace output. It is not read.
	DebugPath string

	// MultiFace allows SearchNext to return more than one face.
	MultiFace bool

	// MinWidth is the minimum face width as a percentage of the image
	// width, in [1, 100].
	MinWidth int
}

// DefaultOpenOptions returns single-face search with a 10% minimum width.
func DefaultOpenOptions() OpenOptions {
	return OpenOptions{MinWidth: 10}
}

// SingleOptions configures SearchSingle.
type SingleOptions struct {
	DebugPath string

	// DataDir overrides the Session's data directory for this call.
	DataDir string
}
