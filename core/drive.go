package core

// MapDrive converts a normalized command into a PWM duty cycle.
//
// Inputs within deadBand of either rail are clipped to that rail; the
// mid-range passes through unchanged (clipped, not rescaled). invert
// mirrors the result to 1-duty.
func MapDrive(normalized, deadBand float32, invert bool) float32 {
	duty := normalized
	if duty < 0 {
		duty = 0
	} else if duty > 1 {
		duty = 1
	}

	switch {
	case duty < deadBand:
		duty = 0
	case duty > 1-deadBand:
		duty = 1
	}

	if invert {
		duty = 1 - duty
	}
	return duty
}
