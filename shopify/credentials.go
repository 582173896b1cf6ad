package shopify

import "fmt"

// Credentials 商店访问凭证
// AccessToken 为长期有效的 Admin 令牌（独立服务部署）；
// 未配置时使用 ClientID/ClientSecret 走 client_credentials 换取令牌（函数部署）。
type Credentials struct {
	Domain       string
	AccessToken  string
	ClientID     string
	ClientSecret string
	APIVersion   string
}

// MissingCredentials 缺失的凭证项
type MissingCredentials struct {
	Domain       bool `json:"domain"`
	ClientID     bool `json:"clientId"`
	ClientSecret bool `json:"clientSecret"`
}

// Missing 返回缺失的凭证项，静态令牌可替代 client id/secret
func (c Credentials) Missing() MissingCredentials {
	m := MissingCredentials{Domain: c.Domain == ""}
	if c.AccessToken == "" {
		m.ClientID = c.ClientID == ""
		m.ClientSecret = c.ClientSecret == ""
	}
	return m
}

// Any 是否存在缺失项
func (m MissingCredentials) Any() bool {
	return m.Domain || m.ClientID || m.ClientSecret
}

// String 便于启动日志输出
func (m MissingCredentials) String() string {
	return fmt.Sprintf("domain=%t clientId=%t clientSecret=%t", m.Domain, m.ClientID, m.ClientSecret)
}

// hasStaticToken 是否使用静态 Admin 令牌
func (c Credentials) hasStaticToken() bool {
	return c.AccessToken != ""
}
