package wda

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mobile-next/touchemu/utils"
)

func (c *WdaClient) GetEndpoint(endpoint string) (map[string]interface{}, error) {
	return c.do(http.MethodGet, endpoint, nil)
}

func (c *WdaClient) PostEndpoint(endpoint string, data interface{}) (map[string]interface{}, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal data: %w", err)
	}
	return c.do(http.MethodPost, endpoint, jsonData)
}

func (c *WdaClient) DeleteEndpoint(endpoint string) (map[string]interface{}, error) {
	return c.do(http.MethodDelete, endpoint, nil)
}

func (c *WdaClient) do(method, endpoint string, body []byte) (map[string]interface{}, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, endpoint)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach endpoint %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("endpoint %s returned %s: %s", endpoint, resp.Status, string(data))
	}

	var result map[string]interface{}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("invalid JSON response: %w", err)
	}

	return result, nil
}

func (c *WdaClient) GetStatus() (map[string]interface{}, error) {
	return c.GetEndpoint("status")
}

// WaitForWebDriverAgent polls the status endpoint until it answers or ctx is done.
func (c *WdaClient) WaitForWebDriverAgent(ctx context.Context) error {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		_, err := c.GetStatus()
		if err == nil {
			utils.Verbose("WebDriverAgent is ready at %s", c.baseURL)
			return nil
		}
		utils.Verbose("WebDriverAgent not ready yet: %v", err)

		select {
		case <-ctx.Done():
			return fmt.Errorf("timed out waiting for WebDriverAgent at %s", c.baseURL)
		case <-ticker.C:
		}
	}
}
