package config

const (
	defaultOutputDir = "~/.local/share/shortreel/runs"
	defaultStateDir  = "~/.local/share/shortreel/state"
	defaultLogDir    = "~/.local/share/shortreel/logs"

	defaultLLMBaseURL        = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel          = "google/gemini-3-flash-preview"
	defaultLLMReferer        = "https://github.com/shortreel/shortreel"
	defaultLLMTitle          = "Shortreel Script Writer"
	defaultLLMTimeoutSeconds = 60

	defaultImagesBaseURL        = "https://api.openai.com/v1/images/generations"
	defaultImagesModel          = "dall-e-3"
	defaultImagesSize           = "1024x1792"
	defaultImagesTimeoutSeconds = 120

	defaultSpeechBaseURL        = "https://api.openai.com/v1/audio/speech"
	defaultSpeechModel          = "tts-1"
	defaultSpeechVoice          = "alloy"
	defaultSpeechTimeoutSeconds = 60

	defaultTranscriberCommand        = "whisperx"
	defaultTranscriberModel          = "small"
	defaultTranscriberLanguage       = "en"
	defaultTranscriberTimeoutSeconds = 300

	defaultFFmpegBinary      = "ffmpeg"
	defaultFFprobeBinary     = "ffprobe"
	defaultRenderWidth       = 1080
	defaultRenderHeight      = 1920
	defaultRenderFrameRate   = 30
	defaultMinCaptionSeconds = 0.5
	defaultFontName          = "Arial"
	defaultFontSize          = 96

	defaultNotifyRequestTimeout = 10

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			StateDir:  defaultStateDir,
			LogDir:    defaultLogDir,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			Referer:        defaultLLMReferer,
			Title:          defaultLLMTitle,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
		},
		Images: Images{
			BaseURL:        defaultImagesBaseURL,
			Model:          defaultImagesModel,
			Size:           defaultImagesSize,
			TimeoutSeconds: defaultImagesTimeoutSeconds,
		},
		Speech: Speech{
			BaseURL:        defaultSpeechBaseURL,
			Model:          defaultSpeechModel,
			Voice:          defaultSpeechVoice,
			TimeoutSeconds: defaultSpeechTimeoutSeconds,
		},
		Transcriber: Transcriber{
			Command:        defaultTranscriberCommand,
			Model:          defaultTranscriberModel,
			Language:       defaultTranscriberLanguage,
			TimeoutSeconds: defaultTranscriberTimeoutSeconds,
		},
		Render: Render{
			FFmpegBinary:      defaultFFmpegBinary,
			FFprobeBinary:     defaultFFprobeBinary,
			Width:             defaultRenderWidth,
			Height:            defaultRenderHeight,
			FrameRate:         defaultRenderFrameRate,
			MinCaptionSeconds: defaultMinCaptionSeconds,
			FontName:          defaultFontName,
			FontSize:          defaultFontSize,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
			RunEvents:      true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
