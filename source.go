package trawl

// ParameterSource yields successive JobParameters for the generator
// scheduling policy. Sources are pull-based and not restartable:
// once Next reports exhaustion it must keep reporting it.
type ParameterSource interface {
	// Next returns the next parameter set. ok is false when the source
	// is exhausted; exhaustion is a normal termination signal, not an
	// error.
	Next() (JobParameters, bool)
}

// SourceFunc adapts a function to the ParameterSource interface.
type SourceFunc func() (JobParameters, bool)

// Next calls f.
func (f SourceFunc) Next() (JobParameters, bool) { return f() }

// FromSlice returns a ParameterSource yielding the given parameter sets
// in order.
func FromSlice(params []JobParameters) ParameterSource {
	s := &sliceSource{params: params}
	return s
}

type sliceSource struct {
	params []JobParameters
	next   int
}

func (s *sliceSource) Next() (JobParameters, bool) {
	if s.next >= len(s.params) {
		return nil, false
	}
	p := s.params[s.next]
	s.next++
	return p, true
}

// FromChannel returns a ParameterSource that pulls from ch until it is
// closed. Next blocks while the channel is open but empty.
func FromChannel(ch <-chan JobParameters) ParameterSource {
	return SourceFunc(func() (JobParameters, bool) {
		p, ok := <-ch
		return p, ok
	})
}
