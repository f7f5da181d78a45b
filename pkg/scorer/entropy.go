package scorer

import "math"

// Character pool sizes used by the brute-force entropy model.
const (
	poolLower   = 26
	poolUpper   = 26
	poolDigit   = 10
	poolSpecial = 33
)

// PoolSize returns the effective alphabet size implied by the classes present.
func (c Classes) PoolSize() int {
	pool := 0
	if c.Lower {
		pool += poolLower
	}
	if c.Upper {
		pool += poolUpper
	}
	if c.Digit {
		pool += poolDigit
	}
	if c.Special {
		pool += poolSpecial
	}
	return pool
}

// Entropy estimates the password's entropy in bits as length*log2(pool).
func Entropy(password string) float64 {
	return entropyBits(runeLen(password), classify(password).PoolSize())
}

func entropyBits(length, pool int) float64 {
	if pool == 0 {
		return 0
	}
	return float64(length) * math.Log2(float64(pool))
}

func entropy(password string, c Classes) EntropyResult {
	bits := entropyBits(runeLen(password), c.PoolSize())
	score := int(bits / entropyScaleBits * maxEntropyScore)
	if score > maxEntropyScore {
		score = maxEntropyScore
	}
	return EntropyResult{Bits: bits, Score: score}
}
