package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/donaldgifford/loss-valuation/internal/metrics"
)

const (
	colorRed    = 0xE74C3C // confidence below 40
	colorOrange = 0xE67E22 // confidence 40-59
	colorYellow = 0xF1C40F // confidence 60+
)

// DiscordNotifier implements Notifier via Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

// discordWebhookPayload is the Discord webhook JSON structure.
type discordWebhookPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	URL         string              `json:"url,omitempty"`
	Color       int                 `json:"color"`
	Description string              `json:"description,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// SendReviewAlert sends a review alert as a Discord embed.
func (d *DiscordNotifier) SendReviewAlert(ctx context.Context, alert *ReviewAlert) error {
	payload := discordWebhookPayload{
		Embeds: []discordEmbed{buildEmbed(alert)},
	}
	return d.post(ctx, payload)
}

func buildEmbed(alert *ReviewAlert) discordEmbed {
	embed := discordEmbed{
		Title: fmt.Sprintf("Valuation needs review: %s", alert.Vehicle),
		URL:   alert.URL,
		Color: confidenceColor(alert.ConfidenceLevel),
		Fields: []discordEmbedField{
			{Name: "Claim", Value: alert.ClaimNumber, Inline: true},
			{Name: "Market Value", Value: fmt.Sprintf("$%.0f", alert.MarketValue), Inline: true},
			{Name: "Confidence", Value: fmt.Sprintf("%d%%", alert.ConfidenceLevel), Inline: true},
			{Name: "Comparables", Value: fmt.Sprintf("%d", alert.ComparableCount), Inline: true},
		},
	}

	if alert.InsuranceValue != nil {
		value := fmt.Sprintf("$%.0f", *alert.InsuranceValue)
		if alert.DifferencePct != nil {
			value += fmt.Sprintf(" (%+.2f%%)", *alert.DifferencePct)
		}
		embed.Fields = append(embed.Fields, discordEmbedField{
			Name: "Insurance Value", Value: value, Inline: true,
		})
	}

	if len(alert.Reasons) > 0 {
		embed.Description = "- " + strings.Join(alert.Reasons, "\n- ")
	}

	return embed
}

func confidenceColor(level int) int {
	switch {
	case level < 40:
		return colorRed
	case level < 60:
		return colorOrange
	default:
		return colorYellow
	}
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.webhookURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := d.client.Do(req)
	metrics.NotificationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("discord rate limited (429)")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode)
		}
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}
