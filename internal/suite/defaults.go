package suite

// applyDefaults fills in default values for unset entry fields.
func applyDefaults(s *Suite) {
	for i := range s.Entries {
		e := &s.Entries[i]
		if e.Bench && e.Iterations == 0 {
			e.Iterations = DefaultIterations
		}
	}
}
