package service

import (
	"HeartSnaps/config"
	"HeartSnaps/pkg/snowflake"
	"context"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss/credentials"
	_ "golang.org/x/image/webp" // webp 仅注册解码器
	_ "image/jpeg"
	_ "image/png"
)

// 照片默认签名有效期
const signExpire = time.Hour

const maxPhotoSize int64 = 10 << 20 // 10MB

type UploadedPhoto struct {
	ObjectKey string
	MimeType  string
	Size      int64
}

var _ IOssService = (*OssService)(nil)

type IOssService interface {
	// UploadOrderPhoto 订单照片入私有桶，key: orders/{orderId}/{position}_{id}.{ext}
	UploadOrderPhoto(ctx context.Context, orderID uint64, position int, header *multipart.FileHeader) (*UploadedPhoto, error)

	// UploadGalleryImage 画廊图片入公开桶，key: {id}.{ext}，返回公开 URL
	UploadGalleryImage(ctx context.Context, header *multipart.FileHeader) (string, string, error)

	// SignPhotoURL 私有桶对象的临时访问 URL，默认 1 小时
	SignPhotoURL(ctx context.Context, objectKey string) (string, error)

	// DownloadReader 私有桶下载流，打包下载用
	DownloadReader(ctx context.Context, objectKey string) (io.ReadCloser, error)

	DeletePrivate(ctx context.Context, objectKey string) error
	DeletePublic(ctx context.Context, objectKey string) error

	PublicURL(objectKey string) string
}

type OssService struct {
	Client        *oss.Client
	PrivateBucket string
	PublicBucket  string
	PublicBaseURL string
}

func NewOssService(cfg *config.OssConfig) IOssService {
	ossCfg := oss.LoadDefaultConfig().
		WithEndpoint(cfg.Endpoint).
		WithRegion(cfg.Region).
		WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.AccessKeySecret,
			),
		)

	client := oss.NewClient(ossCfg)

	return &OssService{
		Client:        client,
		PrivateBucket: cfg.PrivateBucket,
		PublicBucket:  cfg.PublicBucket,
		PublicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}
}

// validatePhoto 读头校验 MIME + 不解码全图取格式，通过后把流 Seek 回起点
func validatePhoto(f multipart.File) (string, string, error) {
	seeker, ok := f.(io.ReadSeeker)
	if !ok {
		return "", "", fmt.Errorf("uploaded file is not seekable")
	}

	head := make([]byte, 512)
	n, _ := seeker.Read(head)
	contentType := http.DetectContentType(head[:n])
	allowedMime := map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/webp": true,
	}
	if !allowedMime[contentType] {
		return "", "", fmt.Errorf("unsupported image type: %s", contentType)
	}
	_, _ = seeker.Seek(0, io.SeekStart)

	_, format, err := image.DecodeConfig(seeker)
	if err != nil {
		return "", "", fmt.Errorf("invalid image: %w", err)
	}
	format = strings.ToLower(format)

	ext := "." + format
	if format == "jpeg" {
		ext = ".jpg"
	}
	_, _ = seeker.Seek(0, io.SeekStart)

	return contentType, ext, nil
}

func (s *OssService) UploadOrderPhoto(ctx context.Context, orderID uint64, position int, header *multipart.FileHeader) (*UploadedPhoto, error) {
	if header == nil {
		return nil, fmt.Errorf("missing image")
	}
	if header.Size <= 0 || header.Size > maxPhotoSize {
		return nil, fmt.Errorf("image size invalid")
	}

	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	contentType, ext, err := validatePhoto(f)
	if err != nil {
		return nil, err
	}

	objectKey := fmt.Sprintf("orders/%d/%d_%d%s", orderID, position, snowflake.GenID(), ext)

	limited := io.LimitReader(f, maxPhotoSize+1)
	if _, err := s.Client.PutObject(ctx, &oss.PutObjectRequest{
		Bucket: oss.Ptr(s.PrivateBucket),
		Key:    oss.Ptr(objectKey),
		Body:   limited,
	}); err != nil {
		return nil, err
	}

	return &UploadedPhoto{
		ObjectKey: objectKey,
		MimeType:  contentType,
		Size:      header.Size,
	}, nil
}

func (s *OssService) UploadGalleryImage(ctx context.Context, header *multipart.FileHeader) (string, string, error) {
	if header == nil {
		return "", "", fmt.Errorf("missing image")
	}
	if header.Size <= 0 || header.Size > maxPhotoSize {
		return "", "", fmt.Errorf("image size invalid")
	}

	f, err := header.Open()
	if err != nil {
		return "", "", err
	}
	defer f.Close()

	_, ext, err := validatePhoto(f)
	if err != nil {
		return "", "", err
	}

	objectKey := fmt.Sprintf("%d%s", snowflake.GenID(), ext)

	limited := io.LimitReader(f, maxPhotoSize+1)
	if _, err := s.Client.PutObject(ctx, &oss.PutObjectRequest{
		Bucket: oss.Ptr(s.PublicBucket),
		Key:    oss.Ptr(objectKey),
		Body:   limited,
	}); err != nil {
		return "", "", err
	}

	return objectKey, s.PublicURL(objectKey), nil
}

func (s *OssService) SignPhotoURL(ctx context.Context, objectKey string) (string, error) {
	result, err := s.Client.Presign(ctx, &oss.GetObjectRequest{
		Bucket: oss.Ptr(s.PrivateBucket),
		Key:    oss.Ptr(objectKey),
	}, oss.PresignExpires(signExpire))
	if err != nil {
		return "", err
	}
	return result.URL, nil
}

func (s *OssService) DownloadReader(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	out, err := s.Client.GetObject(ctx, &oss.GetObjectRequest{
		Bucket: oss.Ptr(s.PrivateBucket),
		Key:    oss.Ptr(objectKey),
	})
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}

func (s *OssService) DeletePrivate(ctx context.Context, objectKey string) error {
	_, err := s.Client.DeleteObject(ctx, &oss.DeleteObjectRequest{
		Bucket: oss.Ptr(s.PrivateBucket),
		Key:    oss.Ptr(objectKey),
	})
	return err
}

func (s *OssService) DeletePublic(ctx context.Context, objectKey string) error {
	_, err := s.Client.DeleteObject(ctx, &oss.DeleteObjectRequest{
		Bucket: oss.Ptr(s.PublicBucket),
		Key:    oss.Ptr(objectKey),
	})
	return err
}

func (s *OssService) PublicURL(objectKey string) string {
	return s.PublicBaseURL + "/" + objectKey
}
