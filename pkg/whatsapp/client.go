// Package whatsapp builds the wa.me deep links that hand a composed order
// off to the shop's WhatsApp number. No WhatsApp API is called; the link is
// opened by the customer's own client.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"
)

const DefaultBaseURL = "https://wa.me"

type Client struct {
	baseURL     string
	phoneNumber string
}

// NewClient builds a link client for the given shop number. The number is
// digits only, country code included, no plus sign.
func NewClient(baseURL, phoneNumber string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		phoneNumber: phoneNumber,
	}
}

// OrderLink URL-encodes the message into a wa.me deep link. Opening the
// link starts a chat with the shop number, message pre-filled.
func (c *Client) OrderLink(message string) string {
	return fmt.Sprintf("%s/%s?text=%s", c.baseURL, c.phoneNumber, url.QueryEscape(message))
}
