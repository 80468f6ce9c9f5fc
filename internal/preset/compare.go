package preset

import "strconv"

// Difference is one field whose value differs between two presets.
type Difference struct {
	Field string
	A, B  string
}

// Fields returns the decoding parameters of p as ordered name/value pairs.
func Fields(p Preset) [][2]string {
	return [][2]string{
		{"beam_size", strconv.Itoa(p.BeamSize)},
		{"chunk_length", strconv.Itoa(p.ChunkLength)},
		{"vad_filter", strconv.FormatBool(p.VADFilter)},
		{"condition_on_previous_text", strconv.FormatBool(p.ConditionOnPreviousText)},
		{"temperature", strconv.FormatFloat(p.Temperature, 'f', -1, 64)},
	}
}

// Compare lists the decoding parameters that differ between a and b.
func Compare(a, b Preset) []Difference {
	fa, fb := Fields(a), Fields(b)

	var diffs []Difference
	for i := range fa {
		if fa[i][1] != fb[i][1] {
			diffs = append(diffs, Difference{Field: fa[i][0], A: fa[i][1], B: fb[i][1]})
		}
	}

	return diffs
}
