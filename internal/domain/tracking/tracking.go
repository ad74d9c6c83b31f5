// Package tracking fires conversion pings to the ad platform. Pings are best effort.
package tracking

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Conversion describes one converted lead.
type Conversion struct {
	Event        string
	SubmissionID string
	Source       string
	AdSource     string
}

type Tracker interface {
	Track(ctx context.Context, c Conversion) error
}

// Pixel issues a GET against a conversion endpoint, the way an analytics pixel would.
type Pixel struct {
	http     *resty.Client
	endpoint string
}

func NewPixel(endpoint string, timeout time.Duration) *Pixel {
	return &Pixel{http: resty.New().SetTimeout(timeout), endpoint: endpoint}
}

func (p *Pixel) Track(ctx context.Context, c Conversion) error {
	event := c.Event
	if event == "" {
		event = "Lead"
	}
	resp, err := p.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"ev":        event,
			"sid":       c.SubmissionID,
			"source":    c.Source,
			"ad_source": c.AdSource,
		}).
		Get(p.endpoint)
	if err != nil {
		return fmt.Errorf("conversion ping: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("conversion ping: status=%d", resp.StatusCode())
	}
	return nil
}

type Noop struct{}

func (Noop) Track(context.Context, Conversion) error { return nil }
