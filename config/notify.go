package config

// NotifyConfig 通知渠道配置，某一项为空则该渠道关闭
type NotifyConfig struct {
	// 邮件 HTTP API
	EmailEndpoint string `json:"email_endpoint" yaml:"email_endpoint"`
	EmailAPIKey   string `json:"email_api_key" yaml:"email_api_key"`
	EmailFrom     string `json:"email_from" yaml:"email_from"`
	// 员工告警收件人
	StaffEmail string `json:"staff_email" yaml:"staff_email"`
	// 推送 API（Bark 风格，GET 即发）
	PushEndpoint string `json:"push_endpoint" yaml:"push_endpoint"`
}

func ProvideNotifyConfig(cfg *Config) *NotifyConfig {
	return cfg.Notify
}
