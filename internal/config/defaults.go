package config

// Provider names accepted by ai.provider.
const (
	ProviderDisabled = "disabled"
	ProviderDeepSeek = "deepseek"
	ProviderOllama   = "ollama"
)

const (
	defaultDataDir          = "~/.local/share/lockin"
	defaultLogDir           = "~/.local/share/lockin/logs"
	defaultAPIBind          = "127.0.0.1:7643"
	defaultTickSeconds      = 1
	defaultMinLoggedMinutes = 1
	defaultDailyGoalMinutes = 120
	defaultDeepSeekBaseURL  = "https://api.deepseek.com"
	defaultDeepSeekModel    = "deepseek-chat"
	defaultOllamaEndpoint   = "http://localhost:11434"
	defaultOllamaModel      = "llama2"
	defaultAITimeoutSeconds = 15
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
			APIBind: defaultAPIBind,
		},
		Timer: Timer{
			TickSeconds:      defaultTickSeconds,
			MinLoggedMinutes: defaultMinLoggedMinutes,
		},
		Goals: Goals{
			DailyGoalMinutes: defaultDailyGoalMinutes,
		},
		AI: AI{
			Provider:        ProviderDisabled,
			DeepSeekBaseURL: defaultDeepSeekBaseURL,
			DeepSeekModel:   defaultDeepSeekModel,
			OllamaEndpoint:  defaultOllamaEndpoint,
			OllamaModel:     defaultOllamaModel,
			TimeoutSeconds:  defaultAITimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
