package timer

// Preset is a named countdown duration offered on the dashboard.
type Preset struct {
	Name    string
	Label   string
	Seconds int
}

var presets = []Preset{
	{Name: "pomodoro", Label: "Pomodoro", Seconds: 25 * 60},
	{Name: "deep-work", Label: "Deep Work", Seconds: 90 * 60},
	{Name: "quick-review", Label: "Quick Review", Seconds: 15 * 60},
	{Name: "mock-test", Label: "Mock Test", Seconds: 120 * 60},
}

// Presets returns the available quick presets in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// LookupPreset finds a preset by name.
func LookupPreset(name string) (Preset, bool) {
	for _, preset := range presets {
		if preset.Name == name {
			return preset, true
		}
	}
	return Preset{}, false
}

// ApplyPreset starts the timer with the named preset's duration. Unknown
// names leave the timer untouched and report false.
func (t *Timer) ApplyPreset(name string) bool {
	preset, ok := LookupPreset(name)
	if !ok {
		return false
	}
	t.Start(preset.Seconds, preset.Name)
	return true
}
