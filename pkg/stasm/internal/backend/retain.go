package backend

import "unsafe"

// imageSlot owns the C copies of images handed to one native entry point.
// The native library keeps pointing at the last image it accepted, so cur
// stays alive until a later call in the same slot succeeds. A failed call may
// or may not have adopted its image, so that copy is parked in stale rather
// than freed, and released once a later call succeeds.
type imageSlot struct {
	cur   unsafe.Pointer
	stale []unsafe.Pointer
}

// replace runs call on next. On success next becomes the current image and
// every older copy is released through free.
func (s *imageSlot) replace(next unsafe.Pointer, free func(unsafe.Pointer), call func() bool) bool {
	if !call() {
		s.stale = append(s.stale, next)
		return false
	}
	if s.cur != nil {
		free(s.cur)
	}
	for _, p := range s.stale {
		free(p)
	}
	s.cur, s.stale = next, nil
	return true
}
