package services

// weatherSeverity maps WMO weather condition codes to a 0-10 disruption
// score, assigned by domain judgment. Severities are normalized by the
// table maximum, so this table is a versioned unit: adding a code with a
// higher score rescales every other code. Edit it as a whole, never
// incrementally.
var weatherSeverity = map[int]int{
	0: 0,
	1: 1, 2: 2, 3: 3,
	45: 4, 48: 4,
	51: 5, 53: 6, 55: 7,
	56: 8, 57: 9,
	61: 5, 63: 6, 65: 7,
	66: 8, 67: 9,
	71: 5, 73: 6, 75: 7,
	77: 6,
	80: 6, 81: 7, 82: 8,
	85: 6, 86: 7,
	95: 9,
	96: 10,
	99: 10,
}

var maxSeverity = func() int {
	max := 0
	for _, v := range weatherSeverity {
		if v > max {
			max = v
		}
	}
	return max
}()

// SeverityForCode normalizes a condition code to [0,1]. Unknown codes map
// to 0 (the clear-sky default), not an error.
func SeverityForCode(code int) float64 {
	return float64(weatherSeverity[code]) / float64(maxSeverity)
}
