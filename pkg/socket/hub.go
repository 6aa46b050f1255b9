package socket

import (
	"HeartSnaps/models"
	"HeartSnaps/pkg/log"
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Hub 后台实时订单流。所有在线的管理端连接收到同一份事件
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	mu         sync.RWMutex
}

func NewHub() *Hub {
	h := &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			log.L.Info("admin feed client connected", zap.Int("total", h.count()))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// 写队列堆满视作掉线
					delete(h.clients, client)
					close(client.send)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

type orderEvent struct {
	Type         string `json:"type"`
	OrderNo      string `json:"order_no"`
	Status       string `json:"status"`
	CustomerName string `json:"customer_name"`
	Quantity     int    `json:"quantity"`
	TotalAmount  int64  `json:"total_amount"`
}

// OrderPaid 支付成功事件，推给所有在线管理端
func (h *Hub) OrderPaid(order *models.Order) {
	h.publish("order.paid", order)
}

// OrderUpdated 状态流转事件
func (h *Hub) OrderUpdated(order *models.Order) {
	h.publish("order.updated", order)
}

func (h *Hub) publish(eventType string, order *models.Order) {
	raw, err := json.Marshal(orderEvent{
		Type:         eventType,
		OrderNo:      order.OrderNo,
		Status:       string(order.Status),
		CustomerName: order.CustomerName,
		Quantity:     order.Quantity,
		TotalAmount:  order.TotalAmount,
	})
	if err != nil {
		return
	}

	select {
	case h.broadcast <- raw:
	default:
		log.L.Warn("admin feed broadcast queue full, event dropped", zap.String("type", eventType))
	}
}
