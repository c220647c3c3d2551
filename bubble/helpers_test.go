package bubble

// scriptedSource replays fixed draws in order and falls back to min once
// the script is exhausted.
type scriptedSource struct {
	values []float32
	calls  int
}

func (s *scriptedSource) Uniform(min, max float32) float32 {
	s.calls++
	if len(s.values) == 0 {
		return min
	}
	v := s.values[0]
	s.values = s.values[1:]
	return v
}

type recordingLogger struct {
	warnings []string
	infos    []string
}

func (l *recordingLogger) Debugf(format string, args ...any) {}
func (l *recordingLogger) Infof(format string, args ...any)  { l.infos = append(l.infos, format) }
func (l *recordingLogger) Warnf(format string, args ...any)  { l.warnings = append(l.warnings, format) }
