package wda

import "fmt"

func (c *WdaClient) CreateSession() (string, error) {
	response, err := c.PostEndpoint("session", map[string]interface{}{
		"capabilities": map[string]interface{}{
			"alwaysMatch": map[string]interface{}{
				"platformName": "iOS",
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	sessionId, ok := response["sessionId"].(string)
	if !ok {
		// newer WDA builds nest it under value
		if value, ok := response["value"].(map[string]interface{}); ok {
			sessionId, _ = value["sessionId"].(string)
		}
	}
	if sessionId == "" {
		return "", fmt.Errorf("failed to create session: no sessionId in response")
	}

	return sessionId, nil
}

func (c *WdaClient) DeleteSession(sessionId string) error {
	_, err := c.DeleteEndpoint(fmt.Sprintf("session/%s", sessionId))
	if err != nil {
		return fmt.Errorf("failed to delete session %s: %w", sessionId, err)
	}
	return nil
}

// GetOrCreateSession returns the cached session, creating one on first use.
func (c *WdaClient) GetOrCreateSession() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sessionId != "" {
		return c.sessionId, nil
	}

	sessionId, err := c.CreateSession()
	if err != nil {
		return "", err
	}
	c.sessionId = sessionId
	return sessionId, nil
}

// Close deletes the cached session, if any.
func (c *WdaClient) Close() error {
	c.mu.Lock()
	sessionId := c.sessionId
	c.sessionId = ""
	c.mu.Unlock()

	if sessionId == "" {
		return nil
	}
	return c.DeleteSession(sessionId)
}
