package engine

import (
	"context"

	"go.uber.org/zap"

	"github.com/suteetoe/catalogadmin/internal/model"
	"github.com/suteetoe/catalogadmin/prometheus"
)

// MutationAPI is the slice of the catalog client the coordinator needs.
type MutationAPI interface {
	CreateProduct(ctx context.Context, payload model.ProductPayload) (model.Product, error)
	UpdateProduct(ctx context.Context, id uint, patch model.ProductUpdate) (model.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
}

// Resyncer triggers an immediate re-fetch with the current query state.
type Resyncer interface {
	Refresh()
}

// Coordinator orchestrates create, update, toggle and delete operations.
// Every successful mutation resyncs the listing under the operator's current
// filters; failures notify and leave the listing untouched. A non-nil error
// return tells the caller to keep its edit surface open for a retry.
type Coordinator struct {
	api      MutationAPI
	resync   Resyncer
	notifier Notifier
	log      *zap.Logger
}

// NewCoordinator wires a mutation coordinator. A nil notifier discards
// notifications.
func NewCoordinator(api MutationAPI, resync Resyncer, notifier Notifier, log *zap.Logger) *Coordinator {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Coordinator{api: api, resync: resync, notifier: notifier, log: log}
}

// Create sends a new product to the API.
func (m *Coordinator) Create(ctx context.Context, payload model.ProductPayload) error {
	created, err := m.api.CreateProduct(ctx, payload)
	if err != nil {
		prometheus.RecordMutationOperation("create", "failure")
		m.log.Error("product create failed", zap.String("name", payload.Name), zap.Error(err))
		m.notifier.Error("failed to create product: " + err.Error())
		return err
	}

	prometheus.RecordMutationOperation("create", "success")
	m.log.Info("product created", zap.Uint("product_id", created.ID), zap.String("name", created.Name))
	m.notifier.Success("product created")
	m.resync.Refresh()
	return nil
}

// Update applies a partial update to an existing product.
func (m *Coordinator) Update(ctx context.Context, id uint, patch model.ProductUpdate) error {
	_, err := m.api.UpdateProduct(ctx, id, patch)
	if err != nil {
		prometheus.RecordMutationOperation("update", "failure")
		m.log.Error("product update failed", zap.Uint("product_id", id), zap.Error(err))
		m.notifier.Error("failed to update product: " + err.Error())
		return err
	}

	prometheus.RecordMutationOperation("update", "success")
	m.log.Info("product updated", zap.Uint("product_id", id))
	m.notifier.Success("product updated")
	m.resync.Refresh()
	return nil
}

// Toggle flips a product's active flag. It is an update under the hood and
// follows the same success and failure paths.
func (m *Coordinator) Toggle(ctx context.Context, p model.Product) error {
	active := !p.IsActive
	_, err := m.api.UpdateProduct(ctx, p.ID, model.ProductUpdate{IsActive: &active})
	if err != nil {
		prometheus.RecordMutationOperation("toggle", "failure")
		m.log.Error("product toggle failed", zap.Uint("product_id", p.ID), zap.Error(err))
		m.notifier.Error("failed to toggle product: " + err.Error())
		return err
	}

	prometheus.RecordMutationOperation("toggle", "success")
	m.log.Info("product toggled", zap.Uint("product_id", p.ID), zap.Bool("is_active", active))
	m.notifier.Success("product status updated")
	m.resync.Refresh()
	return nil
}

// Delete removes a product after explicit confirmation. A declined
// confirmation makes no API call. A failed delete discards the intent: it
// notifies and does not resync.
func (m *Coordinator) Delete(ctx context.Context, id uint, confirm Confirmer) error {
	if confirm != nil && !confirm.Confirm("delete this product?") {
		m.log.Info("product delete cancelled", zap.Uint("product_id", id))
		return nil
	}

	if err := m.api.DeleteProduct(ctx, id); err != nil {
		prometheus.RecordMutationOperation("delete", "failure")
		m.log.Error("product delete failed", zap.Uint("product_id", id), zap.Error(err))
		m.notifier.Error("failed to delete product: " + err.Error())
		return err
	}

	prometheus.RecordMutationOperation("delete", "success")
	m.log.Info("product deleted", zap.Uint("product_id", id))
	m.notifier.Success("product deleted")
	m.resync.Refresh()
	return nil
}
