package mastermind

// Reduce returns the candidates that would have produced the observed
// feedback against the probe, excluding the probe itself. The exclusion is
// a safety net against the "already cracked but still guessing" case: a
// probe that matched the secret exactly must not recur as a candidate.
//
// An empty result is never returned silently. It means the observed
// feedback contradicts earlier feedback (or the probe), which is
// ErrInconsistentFeedback and must be surfaced to the session driver.
//
// Reduce is idempotent for a fixed (probe, observed) pair: every survivor
// already satisfies the filter and none is the probe.
func Reduce(candidates []Code, probe Code, observed Feedback) ([]Code, error) {
	out := make([]Code, 0, len(candidates))
	for _, c := range candidates {
		fb, err := Score(c, probe)
		if err != nil {
			return nil, err
		}
		if fb == observed && !c.Equal(probe) {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return nil, ErrInconsistentFeedback
	}
	return out, nil
}
