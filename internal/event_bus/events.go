package event_bus

const (
	RecordsChangedEvent  EventType = "records.changed"
	SettingsChangedEvent EventType = "settings.changed"
)

type Operation string

const (
	OpAdd       Operation = "add"
	OpUpdate    Operation = "update"
	OpDelete    Operation = "delete"
	OpDeleteAll Operation = "delete_all"
)

// RecordsChanged is published after a mutation of a record collection succeeded.
type RecordsChanged struct {
	// Collection is the key prefix of the collection, e.g. "expense".
	Collection string
	Op         Operation
	Ids        []string
}

// SettingsChanged carries the settings record as persisted.
type SettingsChanged struct {
	Currency             string
	BudgetAlertThreshold float64
}
