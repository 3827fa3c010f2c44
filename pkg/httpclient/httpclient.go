package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HttpRequest is a struct to hold request parameters
type HttpRequest struct {
	URL       string
	Method    string
	Body      []byte
	Headers   map[string]string
	BasicAuth [2]string
	Form      url.Values
}

// SendRequest sends an HTTP request based on the given HttpRequest struct
func SendRequest(ctx context.Context, req HttpRequest) (int, []byte, error) {
	var body io.Reader
	if req.Form != nil {
		body = strings.NewReader(req.Form.Encode())
	} else {
		body = bytes.NewBuffer(req.Body)
	}

	request, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %v", err)
	}

	for key, value := range req.Headers {
		request.Header.Set(key, value)
	}

	if req.Form != nil {
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	if req.BasicAuth[0] != "" {
		request.SetBasicAuth(req.BasicAuth[0], req.BasicAuth[1])
	}

	client := &http.Client{Timeout: 30 * time.Second}

	response, err := client.Do(request)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %v", err)
	}
	defer response.Body.Close()

	respBody, err := io.ReadAll(response.Body)
	if err != nil {
		return response.StatusCode, nil, fmt.Errorf("failed to read response body: %v", err)
	}

	return response.StatusCode, respBody, nil
}
