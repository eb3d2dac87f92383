package anim

// Signal conditioning shared by the starters and steppers: percent
// windows, linear mapping and exponential smoothing. All math is
// integer math; mapRange truncates toward zero like its analog
// counterpart on microcontrollers.

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxI64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

// mapRange projects x from [inMin,inMax] onto [outMin,outMax]. Reversed
// output ranges are fine; the input range must not be degenerate.
func mapRange(x, inMin, inMax, outMin, outMax int) int {
	return (x-inMin)*(outMax-outMin)/(inMax-inMin) + outMin
}

// normalizePercent clamps both bounds to 0..100, swaps them if needed
// and nudges them apart when equal, so a percent window always spans at
// least one step.
func normalizePercent(minP, maxP int) (int, int) {
	minP = clampInt(minP, 0, 100)
	maxP = clampInt(maxP, 0, 100)
	if minP > maxP {
		minP, maxP = maxP, minP
	}
	if minP == maxP {
		if maxP < 100 {
			maxP = minP + 1
		} else {
			minP--
		}
	}
	return minP, maxP
}

// correctedRange orders a signal mapping range and nudges equal bounds
// apart so mapRange never divides by zero.
func correctedRange(minV, maxV int) (int, int) {
	if minV > maxV {
		minV, maxV = maxV, minV
	}
	if minV == maxV {
		if maxV < 65535 {
			maxV = minV + 1
		} else {
			minV--
		}
	}
	return minV, maxV
}

// mappedLevel projects a conditioned signal onto minR..maxR and clamps
// the result into that range.
func mappedLevel(sig, minM, maxM, minR, maxR int) int {
	return clampInt(mapRange(sig, minM, maxM, minR, maxR), minR, maxR)
}

// smoothStep folds a raw reading into a running value. factor is the
// new reading's weight in percent; 100 tracks raw, 0 never moves.
func smoothStep(raw, prev, factor int) int {
	return (raw*factor + prev*(100-factor)) / 100
}

// readPercent samples a percent signal, falling back when unset.
func readPercent(s Signal, def int) int {
	if s == nil {
		return def
	}
	return int(s())
}
