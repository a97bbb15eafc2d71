package payment_method

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/yuuzu/spenderman/internal/event_bus"
	"github.com/yuuzu/spenderman/internal/kv"
	"github.com/yuuzu/spenderman/internal/record"
	"github.com/yuuzu/spenderman/pkg/model"
)

const Collection = "payment_method"

type PaymentMethodRepo interface {
	record.Repository[model.PaymentMethod]
	// GetDefaultPaymentMethod returns the first method flagged as default in id order.
	GetDefaultPaymentMethod(ctx context.Context) (model.PaymentMethod, bool, error)
	// SetDefaultPaymentMethod flags id as the only default. An unknown id leaves no default.
	SetDefaultPaymentMethod(ctx context.Context, id string) (bool, error)
}

type PaymentMethodRepoImpl struct {
	*record.Store[model.PaymentMethod]
}

func NewPaymentMethodRepo(store kv.Store, bus *event_bus.EventBus) *PaymentMethodRepoImpl {
	return &PaymentMethodRepoImpl{
		Store: record.NewStore(store, Collection, model.PaymentMethodId, record.WithEventBus[model.PaymentMethod](bus)),
	}
}

func (r *PaymentMethodRepoImpl) GetDefaultPaymentMethod(ctx context.Context) (model.PaymentMethod, bool, error) {
	methods, err := r.GetAll(ctx)
	if err != nil {
		return model.PaymentMethod{}, false, err
	}
	for _, m := range methods {
		if m.IsDefault {
			return m, true, nil
		}
	}
	return model.PaymentMethod{}, false, nil
}

func (r *PaymentMethodRepoImpl) SetDefaultPaymentMethod(ctx context.Context, id string) (bool, error) {
	log.Debugf("Setting default payment method to %s", id)
	ok, err := r.UpdateEach(ctx, func(m model.PaymentMethod) model.PaymentMethod {
		m.IsDefault = m.Id == id
		return m
	})
	if err != nil {
		log.Errorf("failed to set default payment method %s: %v", id, err)
	}
	return ok, err
}
