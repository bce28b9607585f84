package runner

import "github.com/clintolsen/pyre"

// Execute runs re against data and returns every match span found. When
// first is true, the scan stops after the first match.
func Execute(re *pyre.Regex, data []byte, first bool) [][2]int {
	if first {
		loc := re.FindIndex(data)
		if loc == nil {
			return nil
		}
		return [][2]int{{loc[0], loc[1]}}
	}

	locs := re.FindAllIndex(data, -1)
	if len(locs) == 0 {
		return nil
	}
	spans := make([][2]int, len(locs))
	for i, loc := range locs {
		spans[i] = [2]int{loc[0], loc[1]}
	}
	return spans
}
