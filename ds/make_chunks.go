package ds

// MakeChunks groups elements of a slice into chunks of n elements. The last chunk
// holds whatever is left. For example,
//
//	MakeChunks([]int{1, 2, 3, 4, 5}, 2)
//
// returns [][]int{{1, 2}, {3, 4}, {5}}. A non-positive n yields a single chunk.
func MakeChunks[T any](ts []T, n int) [][]T {
	if len(ts) == 0 {
		return [][]T{}
	}
	if n <= 0 {
		return [][]T{ts}
	}
	chunks := make([][]T, 0, len(ts)/n+1)
	for start := 0; start < len(ts); start += n {
		end := start + n
		if end > len(ts) {
			end = len(ts)
		}
		chunks = append(chunks, ts[start:end])
	}
	return chunks
}
