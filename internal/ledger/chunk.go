// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ledger

// BatchChunkSize is how many writes go into one atomic batch commit. It stays
// one below the server's per-batch cap.
const BatchChunkSize = 499

// Chunk splits items into consecutive groups of at most size elements.
// It returns nil for empty input or a non-positive size.
func Chunk[T any](items []T, size int) [][]T {
	if len(items) == 0 || size <= 0 {
		return nil
	}

	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		chunks = append(chunks, items[start:end:end])
	}
	return chunks
}
