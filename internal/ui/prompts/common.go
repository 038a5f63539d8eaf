package prompts

import (
	"github.com/charmbracelet/huh"
)

// PromptInput prompts for a generic text input with optional default and validator
func PromptInput(message string, defaultValue string, validator func(string) error) (string, error) {
	var inputVal string

	input := huh.NewInput().
		Title(message).
		Value(&inputVal)

	if defaultValue != "" {
		input.Placeholder(defaultValue)
	}

	if validator != nil {
		input.Validate(func(s string) error {
			if s == "" && defaultValue != "" {
				return nil
			}
			return validator(s)
		})
	}

	if err := input.Run(); err != nil {
		return "", err
	}

	if inputVal == "" && defaultValue != "" {
		return defaultValue, nil
	}

	return inputVal, nil
}

// PromptSecret is PromptInput with the typed text hidden.
func PromptSecret(message string, helpText string) (string, error) {
	var secret string

	err := huh.NewInput().
		Title(message).
		Description(helpText).
		EchoMode(huh.EchoModePassword).
		Value(&secret).
		Run()

	return secret, err
}

// Choice is one option of PromptChoice.
type Choice[T comparable] struct {
	Label string
	Value T
}

// PromptChoice prompts for one of choices, preselecting def when present.
func PromptChoice[T comparable](message string, choices []Choice[T], def T) (T, error) {
	selected := def

	opts := make([]huh.Option[T], 0, len(choices))
	for _, c := range choices {
		opts = append(opts, huh.NewOption(c.Label, c.Value))
	}

	err := huh.NewSelect[T]().
		Title(message).
		Options(opts...).
		Value(&selected).
		Run()

	return selected, err
}
