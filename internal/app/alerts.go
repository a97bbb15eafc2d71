package app

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/yuuzu/spenderman/internal/event_bus"
	"github.com/yuuzu/spenderman/internal/feed"
	"github.com/yuuzu/spenderman/pkg/budget"
	"github.com/yuuzu/spenderman/pkg/expense"
	"github.com/yuuzu/spenderman/pkg/model"
	"github.com/yuuzu/spenderman/pkg/stats"
)

// budgetAlertWatcher logs a warning when a budget of the current month reaches
// the alert threshold after a change of expenses, budgets or settings. Each
// budget is reported once until it drops below the threshold again.
type budgetAlertWatcher struct {
	summaries stats.StatsService
	alerted   map[string]bool
}

func newBudgetAlertWatcher(summaries stats.StatsService) *budgetAlertWatcher {
	return &budgetAlertWatcher{summaries: summaries, alerted: make(map[string]bool)}
}

// Run blocks until ctx is done.
func (w *budgetAlertWatcher) Run(ctx context.Context, deps *Dependencies) error {
	expenses, err := feed.Watch[model.Expense](ctx, deps.EventBus, expense.Collection, deps.ExpenseRepo.GetAll)
	if err != nil {
		return err
	}
	budgets, err := feed.Watch[model.Budget](ctx, deps.EventBus, budget.Collection, deps.BudgetRepo.GetAll)
	if err != nil {
		return err
	}
	settingsChanged := make(chan struct{}, 1)
	unsubscribe := event_bus.SubscribeTyped(deps.EventBus, event_bus.SettingsChangedEvent, func(event_bus.EventT[event_bus.SettingsChanged]) error {
		select {
		case settingsChanged <- struct{}{}:
		default:
		}
		return nil
	})
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-expenses:
			if !ok {
				return nil
			}
		case _, ok := <-budgets:
			if !ok {
				return nil
			}
		case <-settingsChanged:
		}
		w.check(ctx)
	}
}

// check returns the ids of budgets that newly crossed the threshold.
func (w *budgetAlertWatcher) check(ctx context.Context) []string {
	summary, err := w.summaries.CurrentMonthSummary(ctx)
	if err != nil {
		log.Errorf("failed to evaluate budget alerts: %v", err)
		return nil
	}
	var raised []string
	for _, status := range summary.Budgets {
		id := status.Budget.Id
		if status.AlertTriggered && !w.alerted[id] {
			log.Warnf("Budget %q reached %.0f%% of %.2f", status.Budget.Name, status.Progress*100, status.Budget.Amount)
			raised = append(raised, id)
		}
		w.alerted[id] = status.AlertTriggered
	}
	return raised
}
