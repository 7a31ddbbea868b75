package tracker

// MinimalRotation returns the lexicographically smallest rotation of s using
// Booth's algorithm. s is not modified.
//
// Steps:
//  1. Double s so every rotation is a window of length n in doubled.
//  2. Keep k, the start of the best rotation so far, and f, the failure
//     function of doubled[k:] as in Knuth-Morris-Pratt (-1 means no border).
//  3. For each j, follow failure links while doubled[j] disagrees with the
//     character after the current border. A smaller doubled[j] means a
//     rotation starting later beats k, so k moves to just past that border.
//  4. With no border left, compare doubled[j] with doubled[k] directly.
//     Either k moves to j or the border stays empty; otherwise the border
//     grows by one.
//  5. The answer is doubled[k:k+n].
//
// Time Complexity: O(n). Memory: O(n).
func MinimalRotation(s []string) []string {
	n := len(s)
	if n == 0 {
		return nil
	}
	doubled := make([]string, 2*n) // every rotation is doubled[r:r+n]
	copy(doubled, s)
	copy(doubled[n:], s)

	f := make([]int, 2*n) // failure links, relative to k
	for i := range f {
		f[i] = -1
	}
	k := 0 // start of the best rotation seen so far
	for j := 1; j < 2*n; j++ {
		i := f[j-k-1] // longest border of doubled[k:j]
		for i != -1 && doubled[j] != doubled[k+i+1] {
			if doubled[j] < doubled[k+i+1] {
				k = j - i - 1 // the rotation starting at the border wins
			}
			i = f[i]
		}
		if doubled[j] != doubled[k+i+1] { // i == -1
			if doubled[j] < doubled[k] {
				k = j
			}
			f[j-k] = -1
		} else {
			f[j-k] = i + 1 // border extends by one
		}
	}

	res := make([]string, n)
	copy(res, doubled[k:k+n])
	return res
}
