package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type ExpoTransport struct {
	url        string
	httpClient *http.Client
}

func NewExpoTransport(url string, httpClient *http.Client) *ExpoTransport {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &ExpoTransport{url: url, httpClient: httpClient}
}

type expoMessage struct {
	To    string `json:"to"`
	Title string `json:"title"`
	Body  string `json:"body"`
	Sound string `json:"sound,omitempty"`
}

type expoResponse struct {
	Data struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"data"`
}

func (t *ExpoTransport) Send(ctx context.Context, token, title, body string) error {
	payload, err := json.Marshal(expoMessage{To: token, Title: title, Body: body, Sound: "default"})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s - %s", ErrDeliveryRejected, resp.Status, string(respBody))
	}

	var ticket expoResponse
	if err := json.Unmarshal(respBody, &ticket); err == nil && ticket.Data.Status == "error" {
		return fmt.Errorf("%w: %s", ErrDeliveryRejected, ticket.Data.Message)
	}
	return nil
}
