package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config 配置信息
type Config struct {
	App       *App          `json:"app" yaml:"app"`
	Server    *Server       `json:"server" yaml:"server"`
	MySQL     *MySQL        `json:"mysql" yaml:"mysql"`
	Redis     *Redis        `json:"redis" yaml:"redis"`
	Jwt       *Jwt          `json:"jwt" yaml:"jwt"`
	Oss       *OssConfig    `json:"oss" yaml:"oss"`
	WechatPay *WechatPay    `json:"wechat_pay" yaml:"wechat_pay"`
	Shop      *ShopConfig   `json:"shop" yaml:"shop"`
	Notify    *NotifyConfig `json:"notify" yaml:"notify"`
	LLM       *LLMConfig    `json:"llm" yaml:"llm"`
}

type Server struct {
	Http int `json:"http" yaml:"http"`
}

func New(filename string) *Config {

	content, err := os.ReadFile(filename)
	if err != nil {
		panic(err)
	}

	var conf Config
	if err := yaml.Unmarshal(content, &conf); err != nil {
		panic(fmt.Sprintf("解析 config.yaml 失败: %v", err))
	}

	return &conf
}

// Debug 调试模式
func (c *Config) Debug() bool {
	return c.App.Debug
}
