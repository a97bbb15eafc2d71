// Package stats derives totals, ratios and rankings from expense snapshots.
package stats

import (
	"cmp"
	"math"
	"slices"

	"cloud.google.com/go/civil"
	"github.com/yuuzu/spenderman/pkg/model"
	"github.com/yuuzu/spenderman/pkg/query"
)

// ScopePolicy decides which expenses count against a category budget.
type ScopePolicy int

const (
	// CategoryScopeIgnoresDates counts every expense of the budget's category,
	// whatever its date. General budgets always use their date range.
	CategoryScopeIgnoresDates ScopePolicy = iota
	// CategoryScopeWithinDates also applies the budget's date range to category budgets.
	CategoryScopeWithinDates
)

const DefaultTagLimit = 10

type PeriodTotals struct {
	Net     float64 `json:"net"`
	Income  float64 `json:"income"`
	Outcome float64 `json:"outcome"`
}

type TagCount struct {
	TagId string
	Count int
}

// BudgetScope selects the expenses considered when measuring b.
func BudgetScope(b model.Budget, expenses []model.Expense, policy ScopePolicy) []model.Expense {
	if b.CategoryId == nil {
		return query.Where(expenses, query.InDateRange(b.StartDate, b.EndDate))
	}
	if policy == CategoryScopeWithinDates {
		return query.Where(expenses, query.ByCategory(*b.CategoryId), query.InDateRange(b.StartDate, b.EndDate))
	}
	return query.Where(expenses, query.ByCategory(*b.CategoryId))
}

// BudgetProgress is the spent share of b in [0, 1]. Income never counts as spending
// and a budget with a non positive amount reports 0.
func BudgetProgress(b model.Budget, expenses []model.Expense, policy ScopePolicy) float64 {
	if !(b.Amount > 0) {
		return 0
	}
	spent := OutcomeSum(BudgetScope(b, expenses, policy))
	ratio := spent / b.Amount
	if math.IsNaN(ratio) {
		return 0
	}
	return math.Max(0, math.Min(1, ratio))
}

func IncomeSum(expenses []model.Expense) float64 {
	total := 0.0
	for _, e := range expenses {
		if e.IsIncome {
			total += e.Amount
		}
	}
	return total
}

func OutcomeSum(expenses []model.Expense) float64 {
	total := 0.0
	for _, e := range expenses {
		if !e.IsIncome {
			total += e.Amount
		}
	}
	return total
}

func NetSum(expenses []model.Expense) float64 {
	total := 0.0
	for _, e := range expenses {
		total += e.SignedAmount()
	}
	return total
}

// NetTotal is income minus spending over [start, end].
func NetTotal(expenses []model.Expense, start, end civil.Date) float64 {
	return NetSum(query.Where(expenses, query.InDateRange(start, end)))
}

func IncomeTotal(expenses []model.Expense, start, end civil.Date) float64 {
	return IncomeSum(query.Where(expenses, query.InDateRange(start, end)))
}

func OutcomeTotal(expenses []model.Expense, start, end civil.Date) float64 {
	return OutcomeSum(query.Where(expenses, query.InDateRange(start, end)))
}

func Totals(expenses []model.Expense, start, end civil.Date) PeriodTotals {
	inRange := query.Where(expenses, query.InDateRange(start, end))
	return PeriodTotals{
		Net:     NetSum(inRange),
		Income:  IncomeSum(inRange),
		Outcome: OutcomeSum(inRange),
	}
}

// MostFrequentCategory returns the category id used by the most expenses of the
// given side, counting records rather than amounts. Ties go to the smallest id.
func MostFrequentCategory(expenses []model.Expense, income bool) (string, bool) {
	counts := make(map[string]int)
	for _, e := range expenses {
		if e.IsIncome == income {
			counts[e.Category]++
		}
	}
	best, bestCount := "", 0
	for id, count := range counts {
		if count > bestCount || (count == bestCount && id < best) {
			best, bestCount = id, count
		}
	}
	return best, bestCount > 0
}

// TagUsage counts how many expenses carry each tag, ordered by count descending
// and then by tag id. A tag listed twice on one expense counts once.
func TagUsage(expenses []model.Expense) []TagCount {
	counts := make(map[string]int)
	for _, e := range expenses {
		seen := make(map[string]bool, len(e.Tags))
		for _, tagId := range e.Tags {
			if !seen[tagId] {
				seen[tagId] = true
				counts[tagId]++
			}
		}
	}
	usage := make([]TagCount, 0, len(counts))
	for id, count := range counts {
		usage = append(usage, TagCount{TagId: id, Count: count})
	}
	slices.SortFunc(usage, func(a, b TagCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.TagId, b.TagId)
	})
	return usage
}

// TopTags resolves the limit most used tag ids against tags, keeping the usage order.
// Ids without a tag record are dropped after the limit is applied.
func TopTags(expenses []model.Expense, tags []model.Tag, limit int) []model.Tag {
	byId := make(map[string]model.Tag, len(tags))
	for _, t := range tags {
		byId[t.Id] = t
	}
	result := make([]model.Tag, 0)
	for _, usage := range query.Take(TagUsage(expenses), limit) {
		if tag, ok := byId[usage.TagId]; ok {
			result = append(result, tag)
		}
	}
	return result
}

// ResolveTags returns the tags whose id appears in tagIds, in the order of tags.
func ResolveTags(tagIds []string, tags []model.Tag) []model.Tag {
	result := make([]model.Tag, 0, len(tagIds))
	for _, t := range tags {
		if slices.Contains(tagIds, t.Id) {
			result = append(result, t)
		}
	}
	return result
}
