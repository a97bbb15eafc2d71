package tag

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/yuuzu/spenderman/internal/rest"
	"github.com/yuuzu/spenderman/pkg/model"
	"github.com/yuuzu/spenderman/pkg/stats"
)

type TagHandler struct {
	*rest.RecordHandler[model.Tag]
	service TagService
}

func NewTagHandler(repo TagRepo, service TagService) *TagHandler {
	return &TagHandler{
		RecordHandler: rest.NewRecordHandler[model.Tag](repo, Collection, model.TagId, func(t model.Tag, id string) model.Tag {
			t.Id = id
			return t
		}),
		service: service,
	}
}

// Popular godoc
// @Summary Most used tags
// @Tags Tag
// @Produce json
// @Param limit query int false "Maximum number of tags" default(10)
// @Success 200 {array} model.Tag
// @Router /api/tag/popular [get]
func (handler *TagHandler) Popular(w http.ResponseWriter, r *http.Request) {
	limit, err := rest.QueryInt(r, "limit", stats.DefaultTagLimit)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid limit", err.Error())
		return
	}
	tags, err := handler.service.GetMostUsedTags(r.Context(), limit)
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, "failed to rank tags", err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, tags)
}

// ByExpense serves /api/expense/{id}/tags.
func (handler *TagHandler) ByExpense(w http.ResponseWriter, r *http.Request) {
	tags, err := handler.service.GetTagsByExpenseId(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, "failed to read tags", err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, tags)
}
