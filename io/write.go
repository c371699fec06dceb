package io

import (
	"context"
	"io"
)

const DefaultChunkSize = 32 * 1024

// WriteAll write all data to writer, a writer that makes no progress
// without an error gets io.ErrShortWrite.
func WriteAll(data []byte, writer io.Writer) (int, error) {
	length := len(data)
	pos := 0
	for pos < length {
		m, err := writer.Write(data[pos:length])
		pos += m
		if err != nil {
			return pos, err
		}
		if m == 0 {
			return pos, io.ErrShortWrite
		}
	}
	return length, nil
}

// Feed copies reader into writer chunk by chunk until EOF, checking ctx
// between chunks. Every chunk is written whole with WriteAll, so a scanner
// on the writer side sees the stream in order and without gaps.
func Feed(ctx context.Context, reader io.Reader, writer io.Writer, chunkSize int) (int64, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	buf := make([]byte, chunkSize)
	total := int64(0)
	for {
		select {
		case <-ctx.Done():
			return total, ctx.Err()
		default:
		}
		n, rerr := reader.Read(buf)
		if n > 0 {
			m, werr := WriteAll(buf[:n], writer)
			total += int64(m)
			if werr != nil {
				return total, werr
			}
		}
		if rerr == io.EOF {
			return total, nil
		}
		if rerr != nil {
			return total, rerr
		}
	}
}
