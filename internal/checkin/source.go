package checkin

import (
	"bufio"
	"errors"
	"io"
	"sync"
)

// ErrSourceClosed is returned by Poll after the source has been closed or
// has reached the end of its input. The session treats it as the signal to
// leave the Scanning state.
var ErrSourceClosed = errors.New("checkin: payload source closed")

// PayloadSource yields decoded scan payloads, one per successful decode.
//
// Poll is non-blocking: it returns ok=false when no payload decoded since
// the last call, mirroring a camera frame with no barcode in it. Close
// releases the underlying capture resource; it must be safe to call more
// than once and must release synchronously.
type PayloadSource interface {
	Poll() (payload string, ok bool, err error)
	Close() error
}

// Frame is one captured image from a camera feed, as tightly packed
// grayscale pixels.
type Frame struct {
	Width  int
	Height int
	Pix    []byte
}

// FrameSource produces frames from a capture device. Grab returns the most
// recent frame, or ok=false when no frame is ready yet.
type FrameSource interface {
	Grab() (frame Frame, ok bool, err error)
	Close() error
}

// Decoder attempts to decode one barcode payload from a frame.
type Decoder interface {
	Decode(Frame) (payload string, ok bool)
}

// SourceFromFrames adapts a camera feed plus a barcode decoder into a
// PayloadSource: each Poll grabs the current frame and tries one decode.
func SourceFromFrames(fs FrameSource, d Decoder) PayloadSource {
	return &frameSource{fs: fs, dec: d}
}

type frameSource struct {
	fs  FrameSource
	dec Decoder
}

func (s *frameSource) Poll() (string, bool, error) {
	frame, ok, err := s.fs.Grab()
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}
	payload, ok := s.dec.Decode(frame)
	return payload, ok, nil
}

func (s *frameSource) Close() error {
	return s.fs.Close()
}

// ReaderSource reads newline-delimited payloads from a reader. This is the
// keyboard-wedge convention: USB barcode scanners type the decoded payload
// followed by a newline, so reading stdin line by line stands in for the
// camera/decoder pair.
//
// Lines are read on an internal goroutine so Poll stays non-blocking.
type ReaderSource struct {
	lines chan string

	mu     sync.Mutex
	closed bool
	done   chan struct{}
	closer io.Closer // optional; closed with the source
}

// NewReaderSource starts reading payload lines from r. If r also
// implements io.Closer it is closed when the source is closed.
func NewReaderSource(r io.Reader) *ReaderSource {
	s := &ReaderSource{
		lines: make(chan string, 16),
		done:  make(chan struct{}),
	}
	if c, ok := r.(io.Closer); ok {
		s.closer = c
	}

	go func() {
		defer close(s.lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case s.lines <- scanner.Text():
			case <-s.done:
				return
			}
		}
	}()

	return s
}

// Poll returns the next payload line if one has arrived.
// Returns ErrSourceClosed once the input is exhausted or the source closed.
func (s *ReaderSource) Poll() (string, bool, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return "", false, ErrSourceClosed
	}

	select {
	case line, ok := <-s.lines:
		if !ok {
			return "", false, ErrSourceClosed
		}
		return line, true, nil
	default:
		return "", false, nil
	}
}

// Close releases the source. Safe to call more than once.
func (s *ReaderSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	close(s.done)
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}
