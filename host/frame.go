package host

import (
	"encoding/binary"
	"fmt"
	"io"
)

// maxFrameSize caps a single message. Native-messaging hosts may not send the
// browser more than this in one frame.
const maxFrameSize = 64 << 20

// readFrame reads one length-prefixed message: a 4-byte little-endian size
// followed by that many bytes of JSON.
func readFrame(r io.Reader) ([]byte, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, err
	}

	size := binary.LittleEndian.Uint32(header[:])
	if size > maxFrameSize {
		return nil, fmt.Errorf("frame of %d bytes exceeds the %d byte limit", size, maxFrameSize)
	}

	payload := make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// writeFrame writes one length-prefixed message.
func writeFrame(w io.Writer, payload []byte) error {
	if len(payload) > maxFrameSize {
		return fmt.Errorf("frame of %d bytes exceeds the %d byte limit", len(payload), maxFrameSize)
	}

	var header [4]byte
	binary.LittleEndian.PutUint32(header[:], uint32(len(payload)))
	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}
