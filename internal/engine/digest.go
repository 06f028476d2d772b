package engine

// DefaultHighThreshold splits 1..45 into low (<23) and high (>=23)
const DefaultHighThreshold = 23

// Digest summarizes a set of numbers
type Digest struct {
	Sum       int `json:"sum"`
	OddCount  int `json:"oddCount"`
	HighCount int `json:"highCount"`
}

// DrawDigest returns the sum, the odd count and the count of numbers at or
// above highThreshold
func DrawDigest(numbers []int, highThreshold int) Digest {
	var d Digest
	for _, n := range numbers {
		d.Sum += n
		if n%2 != 0 {
			d.OddCount++
		}
		if n >= highThreshold {
			d.HighCount++
		}
	}
	return d
}
