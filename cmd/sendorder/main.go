// Command sendorder posts a sample order to a running notification
// endpoint, useful for smoke-testing SMTP configuration.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/guonaihong/gout"

	"github.com/oceancatch/fishhub/internal/notify"
)

var (
	endpoint = flag.String("url", "http://127.0.0.1:1816/api/notify/order", "notification endpoint URL")
	name     = flag.String("name", "Test Customer", "customer name for the sample order")
)

func main() {
	flag.Parse()

	payload := notify.OrderPayload{
		FullName:     *name,
		Phone:        "+1 (555) 123-4567",
		Email:        "test@example.com",
		Address:      "123 Main Street, City",
		Instructions: "Smoke test order, do not fulfil",
		Items: []notify.OrderItem{
			{Name: "Fresh Atlantic Salmon", Size: "Large Fillet", Price: 12.5, Quantity: 2},
			{Name: "Smoked Mackerel", Price: 9.5, Quantity: 1},
		},
		Total: 34.5,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var (
		resp notify.Response
		code int
	)
	err := gout.POST(*endpoint).
		WithContext(ctx).
		SetJSON(payload).
		BindJSON(&resp).
		Code(&code).
		Do()
	if err != nil {
		fmt.Fprintf(os.Stderr, "request failed: %v\n", err)
		os.Exit(1)
	}
	if code != 200 || !resp.Success {
		fmt.Fprintf(os.Stderr, "order rejected: status=%d error=%s\n", code, resp.Error)
		os.Exit(1)
	}
	fmt.Printf("order accepted: %s\n", resp.Message)
}
