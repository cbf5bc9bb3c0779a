package sms

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const driveBaseURL = "https://www.googleapis.com/drive/v3/files/"

// DriveSource downloads the backup file from Google Drive with an API key.
type DriveSource struct {
	FileID  string
	APIKey  string
	BaseURL string
	Client  *http.Client
}

func NewDriveSource(fileID, apiKey string) *DriveSource {
	return &DriveSource{
		FileID:  fileID,
		APIKey:  apiKey,
		BaseURL: driveBaseURL,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Ready reports whether both the file id and the key are configured.
func (d *DriveSource) Ready() bool {
	return d.FileID != "" && d.APIKey != ""
}

// Fetch downloads and decodes the backup.
func (d *DriveSource) Fetch(ctx context.Context) ([]Message, error) {
	if !d.Ready() {
		return nil, fmt.Errorf("sms: drive source not configured")
	}

	u := d.BaseURL + url.PathEscape(d.FileID) + "?alt=media&key=" + url.QueryEscape(d.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := d.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sms: drive fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sms: drive fetch: unexpected status %s", resp.Status)
	}
	return ReadBackup(resp.Body)
}
