package analysis

import "context"

// DisabledMessage is the fixed degraded result shown when no provider is
// configured.
const DisabledMessage = "AI analysis is disabled. Select a provider in settings to analyze documents."

// Disabled is the no-provider variant. It never fails and never leaves the
// process.
type Disabled struct{}

func (Disabled) Name() string { return "disabled" }

func (Disabled) Analyze(context.Context, string) (Result, error) {
	return Result{Summary: DisabledMessage}, nil
}

func (Disabled) Chat(context.Context, string) (string, error) {
	return DisabledMessage, nil
}
