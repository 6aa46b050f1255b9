package service

import (
	"HeartSnaps/dao"
	"HeartSnaps/models"
	"HeartSnaps/pkg/llm"
	"HeartSnaps/pkg/log"
	"HeartSnaps/pkg/response"
	"HeartSnaps/pkg/snowflake"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var _ IGalleryService = (*GalleryService)(nil)

type IGalleryService interface {
	ListPublic(ctx context.Context) ([]*models.GalleryImage, error)
	ListAll(ctx context.Context) ([]*models.GalleryImage, error)
	Upload(ctx context.Context, header *multipart.FileHeader, caption string) (*models.GalleryImage, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
}

type GalleryService struct {
	GalleryDAO *dao.Gallery
	Oss        IOssService
}

func NewGalleryService(galleryDAO *dao.Gallery, ossService IOssService) *GalleryService {
	return &GalleryService{GalleryDAO: galleryDAO, Oss: ossService}
}

func (s *GalleryService) ListPublic(ctx context.Context) ([]*models.GalleryImage, error) {
	return s.GalleryDAO.ListActive(ctx)
}

func (s *GalleryService) ListAll(ctx context.Context) ([]*models.GalleryImage, error) {
	return s.GalleryDAO.ListAll(ctx)
}

// Upload 传公开桶并落库；文案为空时尝试模型生成，生成失败不阻塞上架
func (s *GalleryService) Upload(ctx context.Context, header *multipart.FileHeader, caption string) (*models.GalleryImage, error) {
	objectKey, publicURL, err := s.Oss.UploadGalleryImage(ctx, header)
	if err != nil {
		return nil, response.BadRequest(err.Error())
	}

	caption = strings.TrimSpace(caption)
	var tags []string
	if llm.Enabled() {
		if caption == "" {
			caption = llm.GenImageCaption(ctx, publicURL)
		}
		tags = llm.GenImageTags(ctx, publicURL)
	}

	image := &models.GalleryImage{
		ID:      snowflake.GenID(),
		OssKey:  objectKey,
		Caption: caption,
		Active:  true,
	}
	if len(tags) > 0 {
		raw, _ := json.Marshal(tags)
		image.Tags = raw
	}

	if err := s.GalleryDAO.Create(ctx, image); err != nil {
		if delErr := s.Oss.DeletePublic(ctx, objectKey); delErr != nil {
			log.L.Warn("cleanup gallery image failed", zap.String("key", objectKey), zap.Error(delErr))
		}
		return nil, err
	}
	return image, nil
}

func (s *GalleryService) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	if _, err := s.GalleryDAO.FindById(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound("图片不存在")
		}
		return err
	}
	return s.GalleryDAO.Update(ctx, id, updates)
}

func (s *GalleryService) Delete(ctx context.Context, id int64) error {
	image, err := s.GalleryDAO.FindById(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound("图片不存在")
		}
		return err
	}

	if err := s.GalleryDAO.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.Oss.DeletePublic(ctx, image.OssKey); err != nil {
		log.L.Warn("delete gallery object failed", zap.String("key", image.OssKey), zap.Error(err))
	}
	return nil
}
