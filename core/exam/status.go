package exam

// Kind tells which status vocabulary a Stage uses.
type Kind string

const (
	KindIntermediate Kind = "intermediate"
	KindFinal        Kind = "final"
)

// Status is the outcome of a Stage.
type Status string

const (
	StatusPending Status = "pending"

	// intermediate stages
	StatusCleared    Status = "cleared"
	StatusNotCleared Status = "not-cleared"
	StatusNA         Status = "n/a"

	// final stages
	StatusSelected    Status = "selected"
	StatusNotSelected Status = "not-selected"
)

var (
	intermediateStatuses = []Status{StatusPending, StatusCleared, StatusNotCleared, StatusNA}
	finalStatuses        = []Status{StatusPending, StatusSelected, StatusNotSelected}

	statusLabels = map[Status]string{
		StatusPending:     "Pending",
		StatusCleared:     "Cleared",
		StatusNotCleared:  "Not Cleared",
		StatusNA:          "N/A",
		StatusSelected:    "Selected",
		StatusNotSelected: "Not Selected",
	}
)

// StatusesFor returns the status vocabulary of a stage kind, in display order.
func StatusesFor(kind Kind) []Status {
	if kind == KindFinal {
		return append([]Status(nil), finalStatuses...)
	}
	return append([]Status(nil), intermediateStatuses...)
}

// ValidFor reports whether s belongs to the vocabulary of kind.
func (s Status) ValidFor(kind Kind) bool {
	for _, st := range StatusesFor(kind) {
		if s == st {
			return true
		}
	}
	return false
}

// IsKnown reports whether s belongs to any vocabulary.
func (s Status) IsKnown() bool {
	_, ok := statusLabels[s]
	return ok
}

// Completed reports whether s counts towards progress.
func (s Status) Completed() bool {
	return s == StatusCleared || s == StatusSelected
}

// Label is the display text of s. Unknown and empty statuses read as Pending.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return statusLabels[StatusPending]
}

// LabelFor is the display text of s on a stage of the given kind.
// A status outside the vocabulary of kind reads as Pending.
func (s Status) LabelFor(kind Kind) string {
	if !s.ValidFor(kind) {
		return statusLabels[StatusPending]
	}
	return s.Label()
}

// StatusOption is one choice of a status picker.
type StatusOption struct {
	Value Status `json:"value"`
	Label string `json:"label"`
}

type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPending PaymentStatus = "pending"
	PaymentFree    PaymentStatus = "free"
)

func (ps PaymentStatus) IsValid() bool {
	switch ps {
	case PaymentPaid, PaymentPending, PaymentFree:
		return true
	}
	return false
}

func (ps PaymentStatus) Label() string {
	switch ps {
	case PaymentPaid:
		return "Payment Complete"
	case PaymentPending:
		return "Payment Pending"
	case PaymentFree:
		return "No Payment Required"
	}
	return string(ps)
}

// FinalStatus is the overall outcome of an Application.
type FinalStatus string

const (
	FinalSelected    FinalStatus = "selected"
	FinalNotSelected FinalStatus = "not-selected"
	FinalPending     FinalStatus = "pending"
)

func (fs FinalStatus) IsValid() bool {
	switch fs {
	case FinalSelected, FinalNotSelected, FinalPending:
		return true
	}
	return false
}

func (fs FinalStatus) Label() string {
	switch fs {
	case FinalSelected:
		return "Selected"
	case FinalNotSelected:
		return "Not Selected"
	case FinalPending:
		return "In Progress"
	}
	return string(fs)
}
