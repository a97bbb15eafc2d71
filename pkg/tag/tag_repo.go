package tag

import (
	"github.com/yuuzu/spenderman/internal/event_bus"
	"github.com/yuuzu/spenderman/internal/kv"
	"github.com/yuuzu/spenderman/internal/record"
	"github.com/yuuzu/spenderman/pkg/model"
)

const Collection = "tag"

type TagRepo interface {
	record.Repository[model.Tag]
}

type TagRepoImpl struct {
	*record.Store[model.Tag]
}

func NewTagRepo(store kv.Store, bus *event_bus.EventBus) *TagRepoImpl {
	return &TagRepoImpl{
		Store: record.NewStore(store, Collection, model.TagId, record.WithEventBus[model.Tag](bus)),
	}
}
