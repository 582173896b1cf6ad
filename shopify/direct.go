package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Send 让聚合层在同一进程内直接走 Admin 客户端，返回 data 字段
func (a *AdminClient) Send(ctx context.Context, query string, variables map[string]interface{}) (json.RawMessage, error) {
	var vars json.RawMessage
	if len(variables) > 0 {
		raw, err := json.Marshal(variables)
		if err != nil {
			return nil, fmt.Errorf("encode variables: %w", err)
		}
		vars = raw
	}

	body, err := a.Forward(ctx, ProxyRequest{Query: query, Variables: vars})
	if err != nil {
		return nil, err
	}

	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode upstream envelope: %w", err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return body, nil
	}
	return env.Data, nil
}

// OperationName 取查询的操作名，匿名查询返回 "anonymous"
func OperationName(query string) string {
	q := strings.TrimSpace(query)
	for _, kw := range []string{"query", "mutation"} {
		if !strings.HasPrefix(q, kw) {
			continue
		}
		rest := strings.TrimSpace(strings.TrimPrefix(q, kw))
		end := strings.IndexAny(rest, "({ \n\t")
		if end < 0 {
			end = len(rest)
		}
		if name := rest[:end]; name != "" {
			return name
		}
	}
	return "anonymous"
}
