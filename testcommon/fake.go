package testcommon

import "errors"

var ErrFakeWrite = errors.New("fake write failure")

// FakeWriter accepts up to Limit bytes and then fails every write. Written
// holds whatever was accepted.
type FakeWriter struct {
	Limit   int
	Written []byte
}

func (fw *FakeWriter) Write(p []byte) (int, error) {
	room := fw.Limit - len(fw.Written)
	if room <= 0 {
		return 0, ErrFakeWrite
	}
	if len(p) > room {
		fw.Written = append(fw.Written, p[:room]...)
		return room, ErrFakeWrite
	}
	fw.Written = append(fw.Written, p...)
	return len(p), nil
}
