package infra

// EventType represents the type of event in the system
type EventType int

const (
	RunStarted EventType = iota
	RecordsValidated
	RecordsEnriched
	KPIsAggregated
	CustomersSegmented
	ReportWritten
	TableUploaded
	RunCompleted
)

// String returns the string representation of the EventType
func (et EventType) String() string {
	switch et {
	case RunStarted:
		return "RunStarted"
	case RecordsValidated:
		return "RecordsValidated"
	case RecordsEnriched:
		return "RecordsEnriched"
	case KPIsAggregated:
		return "KPIsAggregated"
	case CustomersSegmented:
		return "CustomersSegmented"
	case ReportWritten:
		return "ReportWritten"
	case TableUploaded:
		return "TableUploaded"
	case RunCompleted:
		return "RunCompleted"
	default:
		return "Unknown"
	}
}

type Event interface{ EventType() EventType }
type Handler func(Event)
type Bus struct{ subs map[EventType][]Handler }

func NewBus() *Bus { return &Bus{subs: map[EventType][]Handler{}} }
func (b *Bus) Publish(e Event) {
	for _, h := range b.subs[e.EventType()] {
		h(e)
	}
}
func (b *Bus) Subscribe(evt EventType, h Handler) { b.subs[evt] = append(b.subs[evt], h) }

// SubscribeAll registers the handler for every run-lifecycle event type.
func (b *Bus) SubscribeAll(h Handler) {
	for et := RunStarted; et <= RunCompleted; et++ {
		b.Subscribe(et, h)
	}
}

// RunStartedEvent announces a pipeline run and its identifier.
type RunStartedEvent struct {
	RunID   string
	RawRows int
}

func (e RunStartedEvent) EventType() EventType { return RunStarted }

// RecordsValidatedEvent reports validation results including the rejection
// summary that must accompany every run.
type RecordsValidatedEvent struct {
	RunID           string
	CleanRows       int
	RejectedRows    int
	RejectionCounts map[string]int
}

func (e RecordsValidatedEvent) EventType() EventType { return RecordsValidated }

// RecordsEnrichedEvent reports how many records carry computed features.
type RecordsEnrichedEvent struct {
	RunID string
	Rows  int
}

func (e RecordsEnrichedEvent) EventType() EventType { return RecordsEnriched }

// KPIsAggregatedEvent reports one granularity's bucket count.
type KPIsAggregatedEvent struct {
	RunID       string
	Granularity string
	Buckets     int
}

func (e KPIsAggregatedEvent) EventType() EventType { return KPIsAggregated }

// CustomersSegmentedEvent reports the segmented population size.
type CustomersSegmentedEvent struct {
	RunID     string
	Customers int
}

func (e CustomersSegmentedEvent) EventType() EventType { return CustomersSegmented }

// ReportWrittenEvent reports one emitted report file.
type ReportWrittenEvent struct {
	RunID string
	Path  string
}

func (e ReportWrittenEvent) EventType() EventType { return ReportWritten }

// TableUploadedEvent reports one persisted table and its row count.
type TableUploadedEvent struct {
	RunID string
	Table string
	Rows  int
}

func (e TableUploadedEvent) EventType() EventType { return TableUploaded }

// RunCompletedEvent closes a pipeline run.
type RunCompletedEvent struct {
	RunID string
}

func (e RunCompletedEvent) EventType() EventType { return RunCompleted }
