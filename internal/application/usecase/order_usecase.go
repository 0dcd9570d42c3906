package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Trackit-api/internal/application/audit"
	"github.com/jhoicas/Trackit-api/internal/application/dto"
	"github.com/jhoicas/Trackit-api/internal/domain"
	"github.com/jhoicas/Trackit-api/internal/domain/entity"
	"github.com/jhoicas/Trackit-api/internal/domain/repository"
	"github.com/jhoicas/Trackit-api/pkg/logger"
)

// OrderUseCase alta y consulta de pedidos. El cierre (Completed) lo hace la salida de stock.
type OrderUseCase struct {
	tx        repository.TxRunner
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	audit     audit.Publisher
	log       *logger.Logger
	now       func() time.Time
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(store repository.Store, publisher audit.Publisher, log *logger.Logger) *OrderUseCase {
	return &OrderUseCase{
		tx:        store.Tx,
		orders:    store.Orders,
		customers: store.Customers,
		audit:     publisher,
		log:       log.Component("orders"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Create registra el pedido ya aprobado junto con su primera entrada de historial.
func (uc *OrderUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if !actor.HasCompany() {
		return nil, domain.ErrNoCompany
	}
	customer, err := uc.customers.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.CompanyID != actor.CompanyID {
		return nil, fmt.Errorf("%w: cliente desconocido", domain.ErrInvalidInput)
	}

	now := uc.now()
	order := &entity.Order{
		ID:          uuid.New().String(),
		CompanyID:   actor.CompanyID,
		CustomerID:  customer.ID,
		Description: in.Description,
		Status:      entity.OrderApproved,
		CreatedAt:   now,
		CreatedBy:   actor.UserID,
	}
	err = uc.tx.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		if err := repos.Orders.Create(ctx, order); err != nil {
			return err
		}
		return repos.Orders.AppendHistory(ctx, &entity.OrderHistory{
			ID:          uuid.New().String(),
			OrderID:     order.ID,
			Status:      entity.OrderApproved,
			Description: "Pedido creado",
			Timestamp:   now,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("crear pedido: %w", err)
	}
	audit.Emit(ctx, uc.audit, uc.log, audit.NewEvent(actor, entity.ActionOrderCreated,
		fmt.Sprintf("Pedido para %s", customer.Name), order.ID, now))
	return toOrderResponse(order), nil
}

// List lista pedidos de la firma; status y customerID vacíos no filtran.
func (uc *OrderUseCase) List(ctx context.Context, actor entity.Actor, q dto.OrderQuery) ([]dto.OrderResponse, error) {
	if !actor.HasCompany() {
		return nil, domain.ErrNoCompany
	}
	switch q.Status {
	case "", entity.OrderPending, entity.OrderApproved, entity.OrderCompleted:
	default:
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.orders.ListByCompany(ctx, actor.CompanyID, q.CustomerID, q.Status)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *toOrderResponse(o))
	}
	return out, nil
}

// History devuelve el historial de un pedido de la firma.
func (uc *OrderUseCase) History(ctx context.Context, actor entity.Actor, orderID string) ([]dto.OrderHistoryResponse, error) {
	if !actor.HasCompany() {
		return nil, domain.ErrNoCompany
	}
	order, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.CompanyID != actor.CompanyID {
		return nil, domain.ErrNotFound
	}
	entries, err := uc.orders.ListHistory(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderHistoryResponse, 0, len(entries))
	for _, h := range entries {
		out = append(out, dto.OrderHistoryResponse{
			ID:          h.ID,
			Status:      h.Status,
			Description: h.Description,
			Timestamp:   h.Timestamp,
		})
	}
	return out, nil
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	return &dto.OrderResponse{
		ID:          o.ID,
		CustomerID:  o.CustomerID,
		Description: o.Description,
		Status:      o.Status,
		CreatedBy:   o.CreatedBy,
		CreatedAt:   o.CreatedAt,
	}
}
