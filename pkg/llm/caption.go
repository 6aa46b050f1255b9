package llm

import (
	"HeartSnaps/config"
	"HeartSnaps/pkg/log"
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"
)

var (
	client  openai.Client
	model   string
	enabled bool
)

// Setup 初始化视觉模型客户端，api_key 为空则整个能力关闭
func Setup(cfg *config.LLMConfig) {
	if cfg == nil || cfg.APIKey == "" {
		return
	}
	client = openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
	)
	model = cfg.Model
	enabled = true
}

func Enabled() bool {
	return enabled
}

// GenImageCaption 给作品图生成一句展示文案
func GenImageCaption(ctx context.Context, imageURL string) string {
	if !enabled {
		return ""
	}

	contentParts := []openai.ChatCompletionContentPartUnionParam{
		{
			OfText: &openai.ChatCompletionContentPartTextParam{
				Text: "这是一张照片冰箱贴作品图。用一句不超过30字的中文描述它，温暖一点，不要引号，不要话题标签。",
			},
		},
		{
			OfImageURL: &openai.ChatCompletionContentPartImageParam{
				ImageURL: openai.ChatCompletionContentPartImageImageURLParam{
					URL: imageURL + "?x-oss-process=image/resize,w_400",
				},
			},
		},
	}
	userMessage := openai.ChatCompletionUserMessageParam{
		Content: openai.ChatCompletionUserMessageParamContentUnion{
			OfArrayOfContentParts: contentParts,
		},
	}

	startTime := time.Now()
	completion, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			{OfUser: &userMessage},
		},
	})
	if err != nil {
		log.L.Error("failed to gen caption", zap.Error(err))
		return ""
	}

	caption := strings.TrimSpace(completion.Choices[0].Message.Content)
	log.L.Info("gen caption", zap.String("caption", caption), zap.Duration("gen time", time.Since(startTime)))
	return caption
}

// GenImageTags 给作品图生成若干展示标签
func GenImageTags(ctx context.Context, imageURL string) []string {
	if !enabled {
		return nil
	}

	contentParts := []openai.ChatCompletionContentPartUnionParam{
		{
			OfText: &openai.ChatCompletionContentPartTextParam{
				Text: "给这张照片冰箱贴作品图打标签。只输出最多5个中文标签，用#开头，用空格分隔，不要任何其他内容。",
			},
		},
		{
			OfImageURL: &openai.ChatCompletionContentPartImageParam{
				ImageURL: openai.ChatCompletionContentPartImageImageURLParam{
					URL: imageURL + "?x-oss-process=image/resize,w_400",
				},
			},
		},
	}
	userMessage := openai.ChatCompletionUserMessageParam{
		Content: openai.ChatCompletionUserMessageParamContentUnion{
			OfArrayOfContentParts: contentParts,
		},
	}

	completion, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			{OfUser: &userMessage},
		},
	})
	if err != nil {
		log.L.Error("failed to gen tags", zap.Error(err))
		return nil
	}
	return ParseTags(completion.Choices[0].Message.Content)
}

func ParseTags(input string) []string {
	re := regexp.MustCompile(`#[^\s#]+`)
	matches := re.FindAllString(input, -1)

	var tags []string
	for _, tag := range matches {
		tags = append(tags, strings.TrimPrefix(tag, "#"))
	}
	return tags
}
