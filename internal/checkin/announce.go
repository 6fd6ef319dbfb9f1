package checkin

import (
	"fmt"
	"io"
)

// Announcer delivers the audible/visible confirmation named after the
// student at check-in. Announcements are best-effort: absence of an
// announcer (or a failed announcement) never fails the check-in.
type Announcer interface {
	Announce(name string)
}

// NopAnnouncer discards announcements.
type NopAnnouncer struct{}

// Announce implements Announcer.
func (NopAnnouncer) Announce(string) {}

// WriterAnnouncer prints the confirmation line to a writer. This is the
// CLI stand-in for the speech-synthesis feedback of the original kiosk.
type WriterAnnouncer struct {
	W io.Writer
}

// Announce implements Announcer.
func (a WriterAnnouncer) Announce(name string) {
	fmt.Fprintf(a.W, "Thank you, %s\n", name)
}
