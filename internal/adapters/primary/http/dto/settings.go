package dto

import (
	"encoding/json"

	"hf-endpoint-service/internal/core/domain"
)

// UpdateSettingsRequest is a sparse settings update; absent fields keep
// their current value.
type UpdateSettingsRequest struct {
	AccessToken *string `json:"access_token"`
	URL         *string `json:"url"`
	Logging     *bool   `json:"logging"`
}

// SettingsResponse is the effective configuration. The token itself is
// never echoed back.
type SettingsResponse struct {
	AccessTokenSet bool   `json:"access_token_set"`
	URL            string `json:"url"`
	Logging        bool   `json:"logging"`
}

// ResponseEntryResponse is one audit-log row.
type ResponseEntryResponse struct {
	ID      int64           `json:"id"`
	Type    string          `json:"type"`
	Created int64           `json:"created"`
	Data    json.RawMessage `json:"data"`
}

// ListResponseEntriesResponse lists recent audit-log rows.
type ListResponseEntriesResponse struct {
	Items []ResponseEntryResponse `json:"items"`
	Total int                     `json:"total"`
}

// ApplySettings merges a sparse update over the current settings.
func ApplySettings(current domain.Settings, req *UpdateSettingsRequest) domain.Settings {
	if req.AccessToken != nil {
		current.AccessToken = *req.AccessToken
	}
	if req.URL != nil {
		current.URL = *req.URL
	}
	if req.Logging != nil {
		current.Logging = *req.Logging
	}
	return current
}

// ToSettingsResponse converts settings for API responses.
func ToSettingsResponse(s domain.Settings) SettingsResponse {
	return SettingsResponse{
		AccessTokenSet: s.AccessToken != "",
		URL:            s.URL,
		Logging:        s.Logging,
	}
}

// ToResponseEntryResponse converts an audit-log row; stored bodies that are
// not valid JSON are returned as a JSON string.
func ToResponseEntryResponse(e domain.ResponseEntry) ResponseEntryResponse {
	out := ResponseEntryResponse{ID: e.ID, Type: e.Type, Created: e.Created}
	if json.Valid([]byte(e.Data)) {
		out.Data = json.RawMessage(e.Data)
		return out
	}
	quoted, _ := json.Marshal(e.Data)
	out.Data = quoted
	return out
}
