// Package stasm exposes the Stasm face-landmark library to Go.
//
// Stasm locates 77 facial landmarks in a grayscale image. All detection and
// shape fitting happens in the native library; this package validates Go
// values, passes them across the C boundary and turns the results back into
// Go values and errors.
//
// # Sessions
//
// The native library keeps one process-wide session: the currently opened
// image and a search cursor. Session is the Go handle for it. Several
// Session values may exist, but they all drive the same native state, so a
// program should treat the library as single-threaded and serialise calls.
//
//	sess := stasm.Default()
//	if err := sess.Init("", false); err != nil {
//	    return err
//	}
//	img, err := stasm.ImageFromGo(gray)
//	if err != nil {
//	    return err
//	}
//	opts := stasm.DefaultOpenOptions()
//	opts.MultiFace = true
//	if err := sess.OpenImage(img, opts); err != nil {
//	    return err
//	}
//	faces, err := sess.SearchAll()
//
// # Results
//
// A search returns Landmarks with NLandmarks points, or an empty set when no
// face was found. An empty set is a normal result, never an error. The same
// applies to ConvertShape when the input cannot be converted.
//
// # Errors
//
// Argument and buffer problems are detected before any native call and are
// reported with ErrInvalidArgument, ErrInvalidImage, ErrInvalidImageShape,
// ErrInvalidLandmarks, ErrInvalidLandmarksShape or ErrOutOfRange. Failures
// reported by the native library come back as *LibraryError holding the
// library's own message. Use errors.Is to classify.
//
// Builds without cgo, and Windows builds, compile but every native call
// fails with ErrNotBuilt.
package stasm
