package wda

import (
	"fmt"
)

// PerformActions sends a W3C actions request in the cached session.
func (c *WdaClient) PerformActions(req ActionsRequest) error {
	if len(req.Actions) == 0 {
		return nil
	}

	sessionId, err := c.GetOrCreateSession()
	if err != nil {
		return err
	}

	_, err = c.PostEndpoint(fmt.Sprintf("session/%s/actions", sessionId), req)
	if err != nil {
		return fmt.Errorf("failed to perform actions: %w", err)
	}
	return nil
}
