package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// eventPageLimit is the server's maximum page size; a batch shorter than this
// marks the last page.
const eventPageLimit = 1000

type eventsResponse struct {
	Items []Document `json:"items"`
}

// getEvents retrieves the complete set of raw items of one event type within
// [start, end] from the cursor-paginated events endpoint.
//
// The cursor starts at the window's lower bound in milliseconds and advances
// to the batch's maximum item timestamp plus one. Three guards terminate the
// loop: an empty page (feed exhausted), a short page (no more pages), and a
// cursor that fails to advance or reaches the window end (a server that
// repeats the same page cannot loop us forever).
func (c *Client) getEvents(ctx context.Context, eventType string, start, end time.Time, label string, extra url.Values) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := c.ensureAuthenticated(); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf(c.eventsURL, c.creds.UserID)
	fromMs, toMs := dateRangeMillis(start, end)
	cursor, _ := strconv.ParseInt(fromMs, 10, 64)
	windowEnd, _ := strconv.ParseInt(toMs, 10, 64)

	params := url.Values{}
	params.Set("eventType", eventType)
	params.Set("limit", strconv.Itoa(eventPageLimit))
	for k, vs := range extra {
		for _, v := range vs {
			params.Add(k, v)
		}
	}

	var items []Document
	for cursor <= windowEnd {
		params.Set("from", strconv.FormatInt(cursor, 10))
		params.Set("to", strconv.FormatInt(windowEnd, 10))

		resp, err := c.get(ctx, endpoint, params)
		if err != nil {
			return nil, err
		}
		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			return nil, err
		}
		observeRequest("events", resp.StatusCode)
		if resp.StatusCode != http.StatusOK {
			return nil, &APIStatusError{Label: label, StatusCode: resp.StatusCode, Body: string(body)}
		}

		var page eventsResponse
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("decode %s events: %w", eventType, err)
		}

		if len(page.Items) == 0 {
			break // exhausted
		}
		items = append(items, page.Items...)
		eventItemsTotal.WithLabelValues(eventType).Add(float64(len(page.Items)))

		if len(page.Items) < eventPageLimit {
			break // short page, nothing further
		}

		// Advance the cursor to the last timestamp seen to avoid truncation.
		var maxTS int64
		for _, item := range page.Items {
			ts := normalizeEpoch(item.Float("timestamp"))
			if ts != 0 {
				if ms := int64(ts * 1000); ms > maxTS {
					maxTS = ms
				}
			}
		}
		if maxTS <= cursor || maxTS >= windowEnd {
			log.Debug().Str("event_type", eventType).Int64("cursor", cursor).Msg("cursor stagnant, stopping pagination")
			break
		}
		cursor = maxTS + 1
	}

	return items, nil
}
