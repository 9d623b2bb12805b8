package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

func Get[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) Result[T] {
	return call[T](ctx, c, newRequest(http.MethodGet, path, nil, opts))
}

func Post[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) Result[T] {
	return call[T](ctx, c, newRequest(http.MethodPost, path, body, opts))
}

func Put[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) Result[T] {
	return call[T](ctx, c, newRequest(http.MethodPut, path, body, opts))
}

func Patch[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) Result[T] {
	return call[T](ctx, c, newRequest(http.MethodPatch, path, body, opts))
}

// Delete sends a DELETE; use WithBody if the endpoint expects a payload.
func Delete[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) Result[T] {
	return call[T](ctx, c, newRequest(http.MethodDelete, path, nil, opts))
}

func call[T any](ctx context.Context, c *Client, req *request) (res Result[T]) {
	defer func() {
		if p := recover(); p != nil {
			res = fail[T](&ErrorInfo{Message: fmt.Sprintf("%s: %v", genericErrorMessage, p)})
		}
	}()

	body, info := c.execute(ctx, req)
	if info != nil {
		return fail[T](info)
	}
	return decode[T](body)
}

func decode[T any](body []byte) Result[T] {
	data := new(T)
	if len(bytes.TrimSpace(body)) == 0 {
		return succeed(data)
	}
	if err := json.Unmarshal(body, data); err != nil {
		return fail[T](&ErrorInfo{
			Message: fmt.Sprintf("invalid response body: %v", err),
			Details: string(body),
		})
	}
	return succeed(data)
}

func transportError(err error) *ErrorInfo {
	if err == nil {
		return &ErrorInfo{Message: genericErrorMessage}
	}
	return &ErrorInfo{Message: fmt.Sprintf("%s: %v", networkErrorMessage, err)}
}

func httpError(resp *response) *ErrorInfo {
	details := parseDetails(resp.body)
	msg := backendMessage(details)
	if msg == "" {
		msg = fmt.Sprintf("request failed with status code %d", resp.status)
	}
	return &ErrorInfo{Message: msg, Details: details, Status: resp.status}
}

func parseDetails(body []byte) any {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return string(trimmed)
	}
	return v
}

// backendMessage picks the human-readable message out of an error body.
// "message" wins over "detail" (the Django REST framework key) and "error".
func backendMessage(details any) string {
	m, isObject := details.(map[string]any)
	if !isObject {
		return ""
	}
	for _, key := range []string{"message", "detail", "error"} {
		if s, isString := m[key].(string); isString && s != "" {
			return s
		}
	}
	return ""
}
