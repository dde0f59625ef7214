package objects

// Step is one stage of the production pipeline (modeling, compositing...).
// Its short name is the token items use in their file and folder names.
type Step struct {
	Object
}

// StepType returns the daemon-side classification of the step (pre
// production, asset production, shot production, post production), or ""
// when unknown.
func (s *Step) StepType() string {
	if value, ok := s.Data().Get("type"); ok {
		if text, isText := value.(string); isText {
			return text
		}
	}
	return ""
}
