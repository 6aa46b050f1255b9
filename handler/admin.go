package handler

import (
	"HeartSnaps/config"
	"HeartSnaps/middleware"
	"HeartSnaps/models"
	"HeartSnaps/pkg/context"
	"HeartSnaps/pkg/response"
	"HeartSnaps/pkg/socket"
	"HeartSnaps/service"
	"HeartSnaps/types"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Admin 后台管理接口，按角色分组挂权限
type Admin struct {
	Config         *config.Config
	AuthzService   service.IAuthzService
	AdminService   service.IAdminService
	OrderService   service.IOrderService
	PromoService   service.IPromoService
	GalleryService service.IGalleryService
	NotifyService  service.INotifyService
	Feed           *socket.Hub
}

func (a *Admin) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(a.Config.Jwt.Secret))

	admin := r.Group("/v1/admin", authorize)

	// moderator 起步：只读的看板、订单、客户查询
	mod := admin.Group("", middleware.RequireRole(a.AuthzService, service.RoleModerator))
	{
		mod.GET("/stats", context.Wrap(a.Stats))
		mod.GET("/orders", context.Wrap(a.ListOrders))
		mod.GET("/orders/:id", context.Wrap(a.OrderDetail))
		mod.GET("/customers", context.Wrap(a.ListCustomers))
		mod.GET("/customers/:id", context.Wrap(a.CustomerDetail))
		mod.GET("/gallery", context.Wrap(a.ListGallery))
	}

	// admin 起步：订单流转、原图下载、优惠码、画廊维护
	adm := admin.Group("", middleware.RequireRole(a.AuthzService, service.RoleAdmin))
	{
		adm.PATCH("/orders/:id/status", context.Wrap(a.UpdateOrderStatus))
		adm.GET("/orders/:id/photos.zip", context.Wrap(a.DownloadPhotos))
		adm.GET("/promos", context.Wrap(a.ListPromos))
		adm.POST("/promos", context.Wrap(a.CreatePromo))
		adm.PUT("/promos/:id", context.Wrap(a.UpdatePromo))
		adm.DELETE("/promos/:id", context.Wrap(a.DeletePromo))
		adm.POST("/gallery", context.Wrap(a.UploadGallery))
		adm.PUT("/gallery/:id", context.Wrap(a.UpdateGallery))
		adm.DELETE("/gallery/:id", context.Wrap(a.DeleteGallery))
	}

	// super_admin 起步：删单、角色管理、审计日志
	sup := admin.Group("", middleware.RequireRole(a.AuthzService, service.RoleSuperAdmin))
	{
		sup.DELETE("/orders/:id", context.Wrap(a.DeleteOrder))
		sup.GET("/admins", context.Wrap(a.ListAdmins))
		sup.POST("/admins", context.Wrap(a.UpsertAdmin))
		sup.DELETE("/admins/:email", context.Wrap(a.RemoveAdmin))
		sup.GET("/logs", context.Wrap(a.ListLogs))
	}
}

func (a *Admin) Stats(c *gin.Context) error {
	stats, err := a.AdminService.Stats(c.Request.Context())
	if err != nil {
		return err
	}
	response.Success(c, stats)
	return nil
}

func (a *Admin) ListOrders(c *gin.Context) error {
	status := models.OrderStatus(c.Query("status"))
	cursor, _ := strconv.ParseUint(c.Query("cursor"), 10, 64)
	pageSize, _ := strconv.Atoi(c.Query("page_size"))

	resp, err := a.OrderService.List(c.Request.Context(), status, cursor, pageSize)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

func (a *Admin) OrderDetail(c *gin.Context) error {
	orderID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	detail, err := a.OrderService.Detail(c.Request.Context(), orderID)
	if err != nil {
		return err
	}
	response.Success(c, detail)
	return nil
}

func (a *Admin) UpdateOrderStatus(c *gin.Context) error {
	orderID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req types.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest("参数错误: " + err.Error())
	}

	ctx := c.Request.Context()
	order, err := a.OrderService.UpdateStatus(ctx, orderID, &req)
	if err != nil {
		return err
	}

	// 进入发货/待自提时通知客户，后台在线端同步收到事件
	switch order.Status {
	case models.OrderStatusShipped:
		a.NotifyService.OrderShipped(ctx, order)
	case models.OrderStatusReadyPickup:
		a.NotifyService.OrderReady(ctx, order)
	}
	a.Feed.OrderUpdated(order)

	if p := middleware.GetPrincipal(c); p != nil {
		a.AdminService.Audit(ctx, p.Email, "order.status", "order", order.OrderNo,
			map[string]string{"status": string(order.Status)})
	}

	response.Success(c, order)
	return nil
}

func (a *Admin) DeleteOrder(c *gin.Context) error {
	orderID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request.Context()
	if err := a.OrderService.Delete(ctx, orderID); err != nil {
		return err
	}

	if p := middleware.GetPrincipal(c); p != nil {
		a.AdminService.Audit(ctx, p.Email, "order.delete", "order", strconv.FormatUint(orderID, 10), nil)
	}

	response.Success(c, gin.H{"deleted": true})
	return nil
}

// DownloadPhotos 打印用的原图打包下载
func (a *Admin) DownloadPhotos(c *gin.Context) error {
	orderID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	c.Header("Content-Type", "application/zip")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="order_%d_photos.zip"`, orderID))

	return a.OrderService.PhotoArchive(c.Request.Context(), orderID, c.Writer)
}

func (a *Admin) ListCustomers(c *gin.Context) error {
	cursor, _ := strconv.ParseUint(c.Query("cursor"), 10, 64)
	pageSize, _ := strconv.Atoi(c.Query("page_size"))

	resp, err := a.AdminService.ListCustomers(c.Request.Context(), cursor, pageSize)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

func (a *Admin) CustomerDetail(c *gin.Context) error {
	customerID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	detail, err := a.AdminService.CustomerDetail(c.Request.Context(), customerID)
	if err != nil {
		return err
	}
	response.Success(c, detail)
	return nil
}

func (a *Admin) ListPromos(c *gin.Context) error {
	promos, err := a.PromoService.List(c.Request.Context())
	if err != nil {
		return err
	}
	response.Success(c, promos)
	return nil
}

func (a *Admin) CreatePromo(c *gin.Context) error {
	var req types.CreatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest("参数错误: " + err.Error())
	}

	ctx := c.Request.Context()
	promo, err := a.PromoService.Create(ctx, &req)
	if err != nil {
		return err
	}

	if p := middleware.GetPrincipal(c); p != nil {
		a.AdminService.Audit(ctx, p.Email, "promo.create", "promo", promo.Code, req)
	}

	response.Success(c, promo)
	return nil
}

func (a *Admin) UpdatePromo(c *gin.Context) error {
	promoID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req types.UpdatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest("参数错误: " + err.Error())
	}

	ctx := c.Request.Context()
	if err := a.PromoService.Update(ctx, promoID, &req); err != nil {
		return err
	}

	if p := middleware.GetPrincipal(c); p != nil {
		a.AdminService.Audit(ctx, p.Email, "promo.update", "promo", strconv.FormatUint(promoID, 10), req)
	}

	response.Success(c, gin.H{"updated": true})
	return nil
}

func (a *Admin) DeletePromo(c *gin.Context) error {
	promoID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request.Context()
	if err := a.PromoService.Delete(ctx, promoID); err != nil {
		return err
	}

	if p := middleware.GetPrincipal(c); p != nil {
		a.AdminService.Audit(ctx, p.Email, "promo.delete", "promo", strconv.FormatUint(promoID, 10), nil)
	}

	response.Success(c, gin.H{"deleted": true})
	return nil
}

func (a *Admin) ListGallery(c *gin.Context) error {
	images, err := a.GalleryService.ListAll(c.Request.Context())
	if err != nil {
		return err
	}
	response.Success(c, images)
	return nil
}

func (a *Admin) UploadGallery(c *gin.Context) error {
	header, err := c.FormFile("image")
	if err != nil {
		return response.BadRequest("缺少 image 文件")
	}

	ctx := c.Request.Context()
	image, err := a.GalleryService.Upload(ctx, header, c.PostForm("caption"))
	if err != nil {
		return err
	}

	if p := middleware.GetPrincipal(c); p != nil {
		a.AdminService.Audit(ctx, p.Email, "gallery.upload", "gallery", strconv.FormatInt(image.ID, 10), nil)
	}

	response.Success(c, image)
	return nil
}

func (a *Admin) UpdateGallery(c *gin.Context) error {
	id, err := parseGalleryID(c)
	if err != nil {
		return err
	}

	var req types.UpdateGalleryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest("参数错误: " + err.Error())
	}

	updates := map[string]interface{}{}
	if req.Caption != nil {
		updates["caption"] = *req.Caption
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if err := a.GalleryService.Update(c.Request.Context(), id, updates); err != nil {
		return err
	}
	response.Success(c, gin.H{"updated": true})
	return nil
}

func (a *Admin) DeleteGallery(c *gin.Context) error {
	id, err := parseGalleryID(c)
	if err != nil {
		return err
	}

	ctx := c.Request.Context()
	if err := a.GalleryService.Delete(ctx, id); err != nil {
		return err
	}

	if p := middleware.GetPrincipal(c); p != nil {
		a.AdminService.Audit(ctx, p.Email, "gallery.delete", "gallery", strconv.FormatInt(id, 10), nil)
	}

	response.Success(c, gin.H{"deleted": true})
	return nil
}

func (a *Admin) ListAdmins(c *gin.Context) error {
	admins, err := a.AdminService.ListAdmins(c.Request.Context())
	if err != nil {
		return err
	}
	response.Success(c, admins)
	return nil
}

func (a *Admin) UpsertAdmin(c *gin.Context) error {
	var req types.UpsertAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest("参数错误: " + err.Error())
	}

	p := middleware.GetPrincipal(c)
	if p == nil {
		return response.Forbidden(service.ErrNotAdmin.Error())
	}

	if err := a.AdminService.UpsertAdmin(c.Request.Context(), p, &req); err != nil {
		return err
	}
	response.Success(c, gin.H{"saved": true})
	return nil
}

func (a *Admin) RemoveAdmin(c *gin.Context) error {
	p := middleware.GetPrincipal(c)
	if p == nil {
		return response.Forbidden(service.ErrNotAdmin.Error())
	}

	if err := a.AdminService.RemoveAdmin(c.Request.Context(), p, c.Param("email")); err != nil {
		return err
	}
	response.Success(c, gin.H{"removed": true})
	return nil
}

func (a *Admin) ListLogs(c *gin.Context) error {
	cursor, _ := strconv.ParseUint(c.Query("cursor"), 10, 64)
	pageSize, _ := strconv.Atoi(c.Query("page_size"))

	resp, err := a.AdminService.ListLogs(c.Request.Context(), cursor, pageSize)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}
