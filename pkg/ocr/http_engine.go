package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
)

// HTTPEngine posts the image to an OCR model service that answers
// {"success": true, "text": "..."}.
type HTTPEngine struct {
	url        string
	httpClient *http.Client
}

func NewHTTPEngine(url string, httpClient *http.Client) *HTTPEngine {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPEngine{url: url, httpClient: httpClient}
}

func (e *HTTPEngine) Recognize(ctx context.Context, img *Image) (string, error) {
	if e.url == "" {
		return "", errors.New("ocr model url not configured")
	}

	file, err := img.Open()
	if err != nil {
		return "", fmt.Errorf("opening image: %w", err)
	}
	defer file.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", filepath.Base(img.Path))
	if err != nil {
		return "", fmt.Errorf("creating form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("writing form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("closing writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending request to ocr model: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("ocr model error: %s - %s", resp.Status, string(bodyBytes))
	}

	var ocrResp struct {
		Success bool   `json:"success"`
		Text    string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ocrResp); err != nil {
		return "", fmt.Errorf("parsing ocr response: %w", err)
	}
	if !ocrResp.Success {
		return "", errors.New("ocr model could not read the image")
	}
	return ocrResp.Text, nil
}

func (e *HTTPEngine) Close() error { return nil }
