// Package notify owns the order notification contract: the payload the
// storefront submits, the email rendering, and the delivery mechanics.
package notify

import (
	"fmt"
	"strings"
	"time"
)

// OrderItem is one cart line as it appears in the notification payload.
type OrderItem struct {
	Name     string  `json:"name"`
	Size     string  `json:"size,omitempty"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// OrderPayload is the wire contract of the notification endpoint.
type OrderPayload struct {
	FullName     string      `json:"fullName"`
	Phone        string      `json:"phone"`
	Email        string      `json:"email"`
	Address      string      `json:"address"`
	Instructions string      `json:"instructions,omitempty"`
	Items        []OrderItem `json:"items"`
	Total        float64     `json:"total"`
}

// Response is what the endpoint returns to the submitter.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// EmailSubject renders the notification mail subject line.
func (p OrderPayload) EmailSubject() string {
	return fmt.Sprintf("New Fish Order from %s", p.FullName)
}

// EmailBody renders the plain-text order summary delivered to the shop
// mailbox.
func (p OrderPayload) EmailBody(now time.Time) string {
	var b strings.Builder
	b.WriteString("New Fish Order Received!\n\n")
	b.WriteString("Customer Details:\n")
	fmt.Fprintf(&b, "  Name: %s\n", p.FullName)
	fmt.Fprintf(&b, "  Phone: %s\n", p.Phone)
	fmt.Fprintf(&b, "  Email: %s\n", p.Email)
	fmt.Fprintf(&b, "  Delivery Address: %s\n", p.Address)
	if p.Instructions != "" {
		fmt.Fprintf(&b, "  Special Instructions: %s\n", p.Instructions)
	}
	b.WriteString("\nOrdered Items:\n")
	for _, item := range p.Items {
		size := ""
		if item.Size != "" {
			size = fmt.Sprintf(" (%s)", item.Size)
		}
		fmt.Fprintf(&b, "• %s%s × %d — $%.2f\n", item.Name, size, item.Quantity, item.Price*float64(item.Quantity))
	}
	fmt.Fprintf(&b, "\nTotal: $%.2f\n\n", p.Total)
	fmt.Fprintf(&b, "Date: %s", now.UTC().Format(time.RFC3339))
	return b.String()
}
