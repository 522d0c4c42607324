package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kk0ga/employee-time-attendance/attendance"
)

const (
	googleCalendarBaseURL = "https://www.googleapis.com/calendar/v3"
	defaultHTTPTimeout    = 10 * time.Second
	maxFetchAttempts      = 4
	baseBackoff           = 250 * time.Millisecond
	maxBackoff            = 2 * time.Second
)

// GoogleClient reads a public holiday calendar (e.g. the Japanese national
// holiday feed) through the Google Calendar events API.
type GoogleClient struct {
	httpClient *http.Client
	logger     *zap.Logger
	baseURL    string
	apiKey     string
	calendarID string
}

// NewGoogleClient creates a client for the given calendar. The API key only
// needs read access to public calendars.
func NewGoogleClient(apiKey, calendarID string, logger *zap.Logger) *GoogleClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GoogleClient{
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		logger:     logger,
		baseURL:    googleCalendarBaseURL,
		apiKey:     apiKey,
		calendarID: calendarID,
	}
}

type googleEvent struct {
	Summary string `json:"summary"`
	Start   struct {
		Date     string `json:"date"`
		DateTime string `json:"dateTime"`
	} `json:"start"`
}

type googleEventsResponse struct {
	Items []googleEvent `json:"items"`
}

// HolidaysForMonth queries the calendar for events between the first day of
// the month and the first day of the next month, both at midnight in the
// fixed +09:00 offset, and returns a date -> holiday-name map.
func (c *GoogleClient) HolidaysForMonth(ctx context.Context, year, month int) (attendance.HolidayMap, error) {
	nextYear, nextMonth := year, month+1
	if month == 12 {
		nextYear, nextMonth = year+1, 1
	}

	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("singleEvents", "true")
	q.Set("orderBy", "startTime")
	q.Set("timeMin", midnightOffsetRFC3339(year, month))
	q.Set("timeMax", midnightOffsetRFC3339(nextYear, nextMonth))

	endpoint := fmt.Sprintf("%s/calendars/%s/events?%s",
		c.baseURL, url.PathEscape(c.calendarID), q.Encode())

	body, err := c.fetchWithRetry(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("holiday calendar fetch %04d-%02d: %w", year, month, err)
	}

	var res googleEventsResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("holiday calendar decode: %w", err)
	}

	holidays := attendance.HolidayMap{}
	for _, ev := range res.Items {
		date := eventDate(ev)
		if date == "" {
			continue
		}
		name := strings.TrimSpace(ev.Summary)
		if name == "" {
			continue
		}
		holidays[date] = name
	}

	c.logger.Debug("fetched holiday calendar",
		zap.Int("year", year), zap.Int("month", month), zap.Int("holidays", len(holidays)))
	return holidays, nil
}

// fetchWithRetry retries rate limits and transient server failures with
// exponential backoff. Other non-2xx statuses fail immediately.
func (c *GoogleClient) fetchWithRetry(ctx context.Context, endpoint string) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= maxFetchAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}

		res, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
		} else {
			body, readErr := io.ReadAll(res.Body)
			res.Body.Close()

			switch {
			case res.StatusCode >= 200 && res.StatusCode < 300:
				if readErr != nil {
					return nil, readErr
				}
				return body, nil
			case res.StatusCode == http.StatusTooManyRequests || res.StatusCode >= 500:
				lastErr = fmt.Errorf("calendar API status %d", res.StatusCode)
			default:
				return nil, fmt.Errorf("calendar API status %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
			}
		}

		if attempt < maxFetchAttempts {
			backoff := baseBackoff << (attempt - 1)
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
			c.logger.Warn("holiday fetch failed, retrying",
				zap.Int("attempt", attempt), zap.Duration("backoff", backoff), zap.Error(lastErr))

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return nil, lastErr
}

// eventDate extracts the YYYY-MM-DD date of an event. All-day events carry
// start.date; timed events carry start.dateTime with an offset suffix.
func eventDate(ev googleEvent) string {
	raw := ev.Start.Date
	if raw == "" {
		raw = ev.Start.DateTime
	}
	if len(raw) < 10 {
		return ""
	}
	return raw[:10]
}

func midnightOffsetRFC3339(year, month int) string {
	return fmt.Sprintf("%04d-%02d-01T00:00:00+09:00", year, month)
}
