package script

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"shortreel/internal/services"
	"shortreel/internal/services/llm"
)

// Scene is one segment of the output video. Description drives image
// generation, Narration drives speech synthesis. Scenes are immutable once
// the script is validated.
type Scene struct {
	Description string `json:"scene_description"`
	Narration   string `json:"narration"`
}

// Script is the ordered scene list for a run. Scene order is final video
// order.
type Script struct {
	Scenes []Scene `json:"scenes"`
}

// Completer is the language-model surface the generator needs.
type Completer interface {
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Generate asks the language model for a scene list derived from the user
// prompt, then parses and validates the response.
func Generate(ctx context.Context, client Completer, prompt string) (Script, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return Script{}, services.Wrap(services.ErrInvalidInput, "script", "generate", "prompt must not be empty", nil)
	}
	content, err := client.CompleteJSON(ctx, systemPrompt, userPrompt(prompt))
	if err != nil {
		return Script{}, services.Wrap(services.ErrProvider, "script", "generate", "language model request failed", err)
	}
	return Parse(content)
}

// Parse decodes raw model output into a Script and validates it. Any shape
// or content problem is a script parse failure; the raw payload is preserved
// in the error chain for diagnostics.
func Parse(content string) (Script, error) {
	var parsed Script
	if err := llm.DecodeLLMJSON(content, &parsed); err != nil {
		return Script{}, services.Wrap(services.ErrScriptParse, "script", "parse", "response is not valid scene JSON", err)
	}
	if err := parsed.Validate(); err != nil {
		return Script{}, err
	}
	return parsed, nil
}

// Validate enforces the structural contract: at least one scene, and every
// scene carries both a description and narration.
func (s Script) Validate() error {
	if len(s.Scenes) == 0 {
		return services.Wrap(services.ErrScriptParse, "script", "validate", "scene list is empty", nil)
	}
	for i, scene := range s.Scenes {
		if strings.TrimSpace(scene.Description) == "" {
			return services.Wrap(services.ErrScriptParse, "script", "validate",
				fmt.Sprintf("scene %d has no description", i), nil)
		}
		if strings.TrimSpace(scene.Narration) == "" {
			return services.Wrap(services.ErrScriptParse, "script", "validate",
				fmt.Sprintf("scene %d has no narration", i), nil)
		}
	}
	return nil
}

// Save persists the validated script as indented JSON. The script is written
// before any downstream work begins so a crashed run still records what it
// was asked to produce.
func (s Script) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode script: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create script directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write script: %w", err)
	}
	return nil
}

// Load reads a previously persisted script and re-validates it.
func Load(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("read script: %w", err)
	}
	var parsed Script
	if err := json.Unmarshal(data, &parsed); err != nil {
		return Script{}, services.Wrap(services.ErrScriptParse, "script", "load", "stored script is not valid JSON", err)
	}
	if err := parsed.Validate(); err != nil {
		return Script{}, err
	}
	return parsed, nil
}
