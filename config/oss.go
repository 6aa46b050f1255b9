package config

// OssConfig 对象存储：私有桶放订单照片（签名 URL 访问），公开桶放画廊图片
type OssConfig struct {
	Endpoint        string `json:"endpoint" yaml:"endpoint"`
	Region          string `json:"region" yaml:"region"`
	PrivateBucket   string `json:"private_bucket" yaml:"private_bucket"`
	PublicBucket    string `json:"public_bucket" yaml:"public_bucket"`
	PublicBaseURL   string `json:"public_base_url" yaml:"public_base_url"`
	AccessKeyID     string `json:"ak" yaml:"ak"`
	AccessKeySecret string `json:"sk" yaml:"sk"`
}

func ProvideOssConfig(cfg *Config) *OssConfig {
	return cfg.Oss
}
