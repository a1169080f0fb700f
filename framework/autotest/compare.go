package autotest

import (
	"bytes"
	"errors"
	"io"
	"os"
)

const compareChunkSize = 32 * 1024

// FilesEqual reports whether two files have exactly the same content. No normalization of line
// endings or whitespace is done.
func FilesEqual(pathA, pathB string) (bool, error) {
	fa, err := os.Open(pathA) //nolint:gosec
	if err != nil {
		return false, err
	}
	defer fa.Close()          //nolint:errcheck
	fb, err := os.Open(pathB) //nolint:gosec
	if err != nil {
		return false, err
	}
	defer fb.Close() //nolint:errcheck

	sa, err := fa.Stat()
	if err != nil {
		return false, err
	}
	sb, err := fb.Stat()
	if err != nil {
		return false, err
	}
	if sa.Mode().IsRegular() && sb.Mode().IsRegular() && sa.Size() != sb.Size() {
		return false, nil
	}

	bufA := make([]byte, compareChunkSize)
	bufB := make([]byte, compareChunkSize)
	for {
		na, errA := io.ReadFull(fa, bufA)
		nb, errB := io.ReadFull(fb, bufB)
		if !bytes.Equal(bufA[:na], bufB[:nb]) {
			return false, nil
		}
		endA, err := chunkEnd(errA)
		if err != nil {
			return false, err
		}
		endB, err := chunkEnd(errB)
		if err != nil {
			return false, err
		}
		if endA || endB {
			return endA == endB, nil
		}
	}
}

func chunkEnd(err error) (bool, error) {
	if err == nil {
		return false, nil
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true, nil
	}
	return false, err
}
