package control

// ByteReader is the non-blocking byte source for incoming commands.
// machine.Serial satisfies it on hardware; tests feed it from a buffer.
type ByteReader interface {
	ReadByte() (byte, error)
}

// LineReader assembles newline- or carriage-return-terminated lines from a
// polled serial channel without ever blocking the control loop.
type LineReader struct {
	r   ByteReader
	buf []byte
}

func NewLineReader(r ByteReader) *LineReader {
	return &LineReader{r: r}
}

// Poll drains bytes until a terminator or until the channel runs dry. It
// returns at most one complete line per call; with several lines buffered the
// remainder stays in the serial buffer for later polls. A partial line is
// carried over until its terminator arrives.
func (lr *LineReader) Poll() (string, bool) {
	for {
		b, err := lr.r.ReadByte()
		if err != nil {
			return "", false
		}

		if b == '\n' || b == '\r' {
			line := string(lr.buf)
			lr.buf = lr.buf[:0]
			return line, true
		}

		lr.buf = append(lr.buf, b)
	}
}
