package mathutil

import "sort"

// Argmax returns the index of the largest element of v, or -1 when v is empty.
// Ties resolve to the lowest index.
func Argmax(v []float64) int {
	if len(v) == 0 {
		return -1
	}
	best := 0
	for i := 1; i < len(v); i++ {
		if v[i] > v[best] {
			best = i
		}
	}
	return best
}

// TopK returns the indices of the k largest elements of v in descending order
// of value. Ties keep index order. k is clamped to len(v).
func TopK(v []float64, k int) []int {
	if k > len(v) {
		k = len(v)
	}
	if k <= 0 {
		return nil
	}
	if k == 1 {
		return []int{Argmax(v)}
	}
	// Insertion into a bounded sorted buffer; k is small (CSLS neighbours,
	// ranked candidates) so this beats sorting the whole row.
	idx := make([]int, 0, k)
	for i, x := range v {
		if len(idx) == k && x <= v[idx[k-1]] {
			continue
		}
		pos := sort.Search(len(idx), func(j int) bool { return v[idx[j]] < x })
		if len(idx) < k {
			idx = append(idx, 0)
		}
		copy(idx[pos+1:], idx[pos:len(idx)-1])
		idx[pos] = i
	}
	return idx
}

// MeanTopK returns the mean of the k largest elements of v.
func MeanTopK(v []float64, k int) float64 {
	idx := TopK(v, k)
	if len(idx) == 0 {
		return 0
	}
	sum := 0.0
	for _, i := range idx {
		sum += v[i]
	}
	return sum / float64(len(idx))
}
