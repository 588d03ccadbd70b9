package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vastravibe/backend/internal/domain/catalog"
	"github.com/vastravibe/backend/internal/domain/customer"
	"github.com/vastravibe/backend/internal/domain/order"
	"github.com/vastravibe/backend/internal/domain/payment"
	"github.com/vastravibe/backend/internal/domain/shared"
	"github.com/vastravibe/backend/internal/domain/shared/valueobject"
)

// Service handles order-related business operations. Placing an order
// snapshots product details into line items, opens a pending payment
// ledger entry and updates the customer profile.
type Service struct {
	orderRepo    order.Repository
	paymentRepo  payment.Repository
	productRepo  catalog.ProductRepository
	customerRepo customer.Repository
}

// NewService creates a new order Service
func NewService(
	orderRepo order.Repository,
	paymentRepo payment.Repository,
	productRepo catalog.ProductRepository,
	customerRepo customer.Repository,
) *Service {
	return &Service{
		orderRepo:    orderRepo,
		paymentRepo:  paymentRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
	}
}

// Create places a new order in pending status
func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	cust, err := s.upsertCustomer(ctx, req.CustomerName, req.CustomerEmail, req.CustomerPhone)
	if err != nil {
		return nil, err
	}

	customerID := cust.ID
	info := order.CustomerInfo{
		CustomerID: &customerID,
		Name:       req.CustomerName,
		Email:      req.CustomerEmail,
		Phone:      req.CustomerPhone,
	}
	address := order.ShippingAddress{
		Name:         req.ShippingAddress.Name,
		AddressLine1: req.ShippingAddress.AddressLine1,
		AddressLine2: req.ShippingAddress.AddressLine2,
		City:         req.ShippingAddress.City,
		State:        req.ShippingAddress.State,
		Country:      req.ShippingAddress.Country,
		PostalCode:   req.ShippingAddress.PostalCode,
		Phone:        req.ShippingAddress.Phone,
	}

	o, err := order.New("", info, address, payment.Method(req.PaymentMethod))
	if err != nil {
		return nil, err
	}
	o.CreatedBy = req.CreatedBy

	for _, line := range req.Items {
		product, err := s.productRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PRODUCT",
					fmt.Sprintf("Product %s not found", line.ProductID))
			}
			return nil, err
		}
		if !product.IsActive() {
			return nil, shared.NewDomainError("PRODUCT_UNAVAILABLE",
				fmt.Sprintf("Product %q is not available for sale", product.Name))
		}

		image := ""
		if len(product.Images) > 0 {
			image = product.Images[0]
		}
		price := valueobject.NewMoneyINR(product.Price.Effective())
		if _, err := o.AddItem(product.ID, product.Name, product.SKU, image, price, line.Quantity); err != nil {
			return nil, err
		}

		if product.Inventory.TrackQuantity {
			if err := product.AdjustStock(-line.Quantity); err != nil {
				return nil, shared.NewDomainError("INSUFFICIENT_STOCK",
					fmt.Sprintf("Not enough stock for %q", product.Name))
			}
			if err := s.productRepo.Save(ctx, product); err != nil {
				return nil, err
			}
		}
	}

	if req.ShippingCharge != nil || req.Tax != nil || req.Discount != nil {
		shipping := valueobject.NewMoneyINR(o.Summary.Shipping)
		tax := valueobject.NewMoneyINR(o.Summary.Tax)
		discount := valueobject.NewMoneyINR(o.Summary.Discount)
		if req.ShippingCharge != nil {
			shipping = valueobject.NewMoneyINR(*req.ShippingCharge)
		}
		if req.Tax != nil {
			tax = valueobject.NewMoneyINR(*req.Tax)
		}
		if req.Discount != nil {
			discount = valueobject.NewMoneyINR(*req.Discount)
		}
		if err := o.SetAdjustments(shipping, tax, discount); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		o.SetNotes(req.Notes)
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	p, err := payment.New(o.ID, o.OrderNumber, o.GetTotalMoney(), payment.Method(req.PaymentMethod))
	if err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	cust.RecordOrder(time.Now())
	if err := s.customerRepo.Save(ctx, cust); err != nil {
		return nil, err
	}

	return ToOrderResponse(o), nil
}

// GetByID retrieves an order by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(o), nil
}

// List retrieves orders matching the filter, with the total count
func (s *Service) List(ctx context.Context, filter OrderListFilter) ([]OrderResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.Search = filter.Search
	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}
	if filter.SortBy != "" {
		domainFilter.OrderBy = filter.SortBy
	}
	if filter.SortDir != "" {
		domainFilter.OrderDir = filter.SortDir
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.PaymentStatus != "" {
		domainFilter.Filters["payment_status"] = filter.PaymentStatus
	}

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, *ToOrderResponse(&orders[i]))
	}
	return responses, total, nil
}

// Update applies a partial update to an order. Item and adjustment
// changes are accepted only while the order is pending.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ShippingAddress != nil {
		if !o.CanModify() {
			return nil, shared.NewDomainError("ORDER_NOT_MODIFIABLE",
				"Shipping address can only change while the order is pending")
		}
		o.ShippingAddress = order.ShippingAddress{
			Name:         req.ShippingAddress.Name,
			AddressLine1: req.ShippingAddress.AddressLine1,
			AddressLine2: req.ShippingAddress.AddressLine2,
			City:         req.ShippingAddress.City,
			State:        req.ShippingAddress.State,
			Country:      req.ShippingAddress.Country,
			PostalCode:   req.ShippingAddress.PostalCode,
			Phone:        req.ShippingAddress.Phone,
		}
	}

	if len(req.Items) > 0 {
		if err := s.replaceItems(ctx, o, req.Items); err != nil {
			return nil, err
		}
	}

	if req.ShippingCharge != nil || req.Tax != nil || req.Discount != nil {
		shipping := valueobject.NewMoneyINR(o.Summary.Shipping)
		tax := valueobject.NewMoneyINR(o.Summary.Tax)
		discount := valueobject.NewMoneyINR(o.Summary.Discount)
		if req.ShippingCharge != nil {
			shipping = valueobject.NewMoneyINR(*req.ShippingCharge)
		}
		if req.Tax != nil {
			tax = valueobject.NewMoneyINR(*req.Tax)
		}
		if req.Discount != nil {
			discount = valueobject.NewMoneyINR(*req.Discount)
		}
		if err := o.SetAdjustments(shipping, tax, discount); err != nil {
			return nil, err
		}
	}

	if req.ShippingMethod != nil || req.Carrier != nil || req.TrackingNumber != nil {
		info := o.Shipping
		if req.ShippingMethod != nil {
			info.Method = *req.ShippingMethod
		}
		if req.Carrier != nil {
			info.Carrier = *req.Carrier
		}
		if req.TrackingNumber != nil {
			info.TrackingNumber = *req.TrackingNumber
		}
		o.SetShippingInfo(info)
	}
	if req.Notes != nil {
		o.SetNotes(*req.Notes)
	}

	o.IncrementVersion()
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	return ToOrderResponse(o), nil
}

// ChangeStatus moves an order through its lifecycle. Invalid
// transitions are rejected by the aggregate.
func (s *Service) ChangeStatus(ctx context.Context, id uuid.UUID, req ChangeStatusRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := o.ChangeStatus(order.Status(req.Status), req.Note, req.ChangedBy); err != nil {
		return nil, err
	}

	o.IncrementVersion()
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	return ToOrderResponse(o), nil
}

// replaceItems swaps the order's line items for the requested set,
// re-snapshotting prices from the catalog
func (s *Service) replaceItems(ctx context.Context, o *order.Order, items []OrderItemRequest) error {
	if !o.CanModify() {
		return shared.NewDomainError("ORDER_NOT_MODIFIABLE",
			"Line items can only change while the order is pending")
	}

	for _, existing := range append([]order.Item(nil), o.Items...) {
		if err := o.RemoveItem(existing.ID); err != nil {
			return err
		}
	}

	for _, line := range items {
		product, err := s.productRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("INVALID_PRODUCT",
					fmt.Sprintf("Product %s not found", line.ProductID))
			}
			return err
		}
		image := ""
		if len(product.Images) > 0 {
			image = product.Images[0]
		}
		price := valueobject.NewMoneyINR(product.Price.Effective())
		if _, err := o.AddItem(product.ID, product.Name, product.SKU, image, price, line.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// upsertCustomer finds the customer by email or creates a new profile
func (s *Service) upsertCustomer(ctx context.Context, name, email, phone string) (*customer.Customer, error) {
	existing, err := s.customerRepo.FindByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	cust, err := customer.New(name, email, phone)
	if err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, cust); err != nil {
		return nil, err
	}
	return cust, nil
}
