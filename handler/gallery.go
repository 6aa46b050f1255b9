package handler

import (
	"HeartSnaps/models"
	"HeartSnaps/pkg/context"
	"HeartSnaps/pkg/response"
	"HeartSnaps/service"
	"HeartSnaps/types"
	"encoding/json"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Gallery 首页作品画廊，前台只读
type Gallery struct {
	GalleryService service.IGalleryService
	OssService     service.IOssService
}

func (g *Gallery) RegisterRouter(r gin.IRouter) {
	gallery := r.Group("/v1/gallery")
	{
		gallery.GET("", context.Wrap(g.List))
	}
}

func (g *Gallery) List(c *gin.Context) error {
	images, err := g.GalleryService.ListPublic(c.Request.Context())
	if err != nil {
		return err
	}

	response.Success(c, g.toItems(images))
	return nil
}

func (g *Gallery) toItems(images []*models.GalleryImage) []types.GalleryItem {
	items := make([]types.GalleryItem, 0, len(images))
	for _, img := range images {
		item := types.GalleryItem{
			ID:      img.ID,
			URL:     g.OssService.PublicURL(img.OssKey),
			Caption: img.Caption,
		}
		if len(img.Tags) > 0 {
			_ = json.Unmarshal(img.Tags, &item.Tags)
		}
		items = append(items, item)
	}
	return items
}

func parseGalleryID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, response.BadRequest("id 不合法")
	}
	return id, nil
}
