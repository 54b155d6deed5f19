package domain

// Setting keys persisted in the settings store.
const (
	SettingAccessToken = "access_token"
	SettingURL         = "url"
	SettingLogging     = "logging"
)

// Settings is the effective module configuration: file/env defaults merged
// with persisted overrides, token last (it lives in its own state-like row).
type Settings struct {
	// AccessToken is the global HuggingFace API token. Records may override
	// it per endpoint.
	AccessToken string `json:"access_token"`
	// URL is the hosted inference URL tasks post to. When empty, tasks fall
	// back to the per-task default model URL.
	URL string `json:"url"`
	// Logging toggles the response audit log and debug request logging.
	Logging bool `json:"logging"`
}
