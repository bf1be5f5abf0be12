package audio

// Analyzer decodes fetched audio bytes and locates the non-silent
// range in one step.
type Analyzer struct {
	Trimmer Trimmer
}

// Analyze decodes MP3 bytes and returns the trim range plus the
// stream's sample rate. The caller decides what an empty range means.
func (a Analyzer) Analyze(data []byte) (TrimRange, int, error) {
	buf, err := Decode(data)
	if err != nil {
		return TrimRange{}, 0, err
	}
	return a.Trimmer.Trim(buf), buf.SampleRate, nil
}
