package model

// FiscalMonths month vocabulary in fiscal-year order (May first).
// Month detection scans it in this order and the categorical month axis follows it.
var FiscalMonths = []string{
	"May", "June", "July", "August", "September", "October",
	"November", "December", "January", "February", "March", "April",
}

// MonthRank position of a label in FiscalMonths
func MonthRank(label string) (int, bool) {
	for i, m := range FiscalMonths {
		if m == label {
			return i, true
		}
	}
	return -1, false
}

// OrderMonths filters FiscalMonths down to the labels present.
// Labels outside the vocabulary are dropped.
func OrderMonths(labels []string) []string {
	present := make(map[string]bool, len(labels))
	for _, l := range labels {
		present[l] = true
	}

	ordered := make([]string, 0, len(present))
	for _, m := range FiscalMonths {
		if present[m] {
			ordered = append(ordered, m)
		}
	}
	return ordered
}
