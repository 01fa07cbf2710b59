package notify

import (
	"context"
	"time"

	"github.com/guonaihong/gout"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/oceancatch/fishhub/config"
)

// Client posts an assembled order payload to the notification endpoint.
// It implements the submission workflow's Notifier dependency.
type Client struct {
	url     string
	timeout time.Duration
}

func NewClient(cfg config.NotifyConfig) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{url: cfg.URL, timeout: timeout}
}

// SendOrder submits the payload and returns an error for both transport
// failures and application-level rejections. Callers treat either the
// same way: the order was not accepted.
func (c *Client) SendOrder(ctx context.Context, payload OrderPayload) error {
	var (
		resp Response
		code int
	)
	err := gout.POST(c.url).
		WithContext(ctx).
		SetTimeout(c.timeout).
		SetJSON(payload).
		BindJSON(&resp).
		Code(&code).
		Do()
	if err != nil {
		zap.L().Warn("order notification transport error", zap.String("url", c.url), zap.Error(err))
		return errors.Wrap(err, "notify endpoint unreachable")
	}
	if code < 200 || code >= 300 || !resp.Success {
		zap.L().Warn("order notification rejected",
			zap.Int("status", code), zap.String("error", resp.Error))
		return errors.Errorf("notify endpoint rejected order: status=%d error=%s", code, resp.Error)
	}
	return nil
}
