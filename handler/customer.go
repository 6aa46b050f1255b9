package handler

import (
	"HeartSnaps/models"
	"HeartSnaps/pkg/context"
	"HeartSnaps/pkg/response"
	"HeartSnaps/service"

	"github.com/gin-gonic/gin"
)

// Customer 老客回访时按手机号预填资料
type Customer struct {
	CustomerService service.ICustomerService
}

func (h *Customer) RegisterRouter(r gin.IRouter) {
	customer := r.Group("/v1/customers")
	{
		customer.GET("/lookup", context.Wrap(h.Lookup))
	}
}

// Lookup 按手机号或邮箱查询，只回预填字段，不暴露消费统计
func (h *Customer) Lookup(c *gin.Context) error {
	phone := c.Query("phone")
	email := c.Query("email")
	if phone == "" && email == "" {
		return response.BadRequest("phone 和 email 至少填一个")
	}

	var (
		customer *models.Customer
		err      error
	)
	if phone != "" {
		customer, err = h.CustomerService.FindByPhone(c.Request.Context(), phone)
	} else {
		customer, err = h.CustomerService.FindByEmail(c.Request.Context(), email)
	}
	if err != nil {
		return err
	}
	if customer == nil {
		response.Success(c, gin.H{"found": false})
		return nil
	}

	response.Success(c, gin.H{
		"found":   true,
		"name":    customer.Name,
		"email":   customer.Email,
		"address": customer.Address,
	})
	return nil
}
