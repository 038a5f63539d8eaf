package prompts

import (
	"fmt"
	"net/url"
	"strings"
)

// APISettings is what the first-run wizard collects.
type APISettings struct {
	BaseURL string
	Token   string
}

func PromptInitAPI(currDefault string) (APISettings, error) {
	var settings APISettings

	baseURL, err := PromptInput(
		"Welcome to dealflow! Where is your transaction store?",
		currDefault,
		validateBaseURL,
	)
	if err != nil {
		return settings, err
	}

	token, err := PromptSecret(
		"API token:",
		"Leave empty if the store does not require authentication.",
	)
	if err != nil {
		return settings, err
	}

	settings.BaseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	settings.Token = strings.TrimSpace(token)
	return settings, nil
}

func validateBaseURL(s string) error {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("please enter an http(s) URL, e.g. https://crm.example.com/api")
	}
	return nil
}
