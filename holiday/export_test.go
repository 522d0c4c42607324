package holiday

import (
	"net/http"

	"go.uber.org/zap"
)

// NewGoogleClientForTest builds a GoogleClient pointed at a test server.
func NewGoogleClientForTest(client *http.Client, baseURL, apiKey, calendarID string) *GoogleClient {
	return &GoogleClient{
		httpClient: client,
		logger:     zap.NewNop(),
		baseURL:    baseURL,
		apiKey:     apiKey,
		calendarID: calendarID,
	}
}
