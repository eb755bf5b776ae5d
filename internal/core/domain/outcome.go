package domain

import "fmt"

// OutcomeKind tags the result of one provider invocation.
type OutcomeKind string

const (
	// OutcomeSuccess means at least one item came back.
	OutcomeSuccess OutcomeKind = "success"
	// OutcomeBlocked means the backend was unreachable or gave no usable page.
	OutcomeBlocked OutcomeKind = "blocked"
	// OutcomeEmpty means the backend answered with zero items.
	OutcomeEmpty OutcomeKind = "empty"
	// OutcomeCategoryUnsupported means the operation takes no category here.
	OutcomeCategoryUnsupported OutcomeKind = "category_unsupported"
	// OutcomeCategoryInvalid means the category is not in the provider's set.
	OutcomeCategoryInvalid OutcomeKind = "category_invalid"
	// OutcomeOperationUnsupported means the provider lacks the capability.
	OutcomeOperationUnsupported OutcomeKind = "operation_unsupported"
	// OutcomeProviderUnknown means no provider has the requested id.
	OutcomeProviderUnknown OutcomeKind = "provider_unknown"
	// OutcomeProviderFault means the provider call failed unexpectedly.
	OutcomeProviderFault OutcomeKind = "provider_fault"
)

// Outcome is the classified result of one provider invocation.
// Exactly one Kind is set; Items and Total are meaningful only for
// OutcomeSuccess and Available only for OutcomeCategoryInvalid.
type Outcome struct {
	Kind       OutcomeKind
	Operation  Operation
	ProviderID string
	Items      []Item
	Total      int
	Available  []string
	// Cause is the underlying provider error for blocked and fault outcomes.
	Cause error
}

// OK returns true for a successful outcome.
func (o Outcome) OK() bool {
	return o.Kind == OutcomeSuccess
}

// Err maps the outcome to a domain error. It returns nil on success.
func (o Outcome) Err() error {
	switch o.Kind {
	case OutcomeSuccess:
		return nil
	case OutcomeBlocked:
		return ErrBlocked
	case OutcomeEmpty:
		return ErrEmpty
	case OutcomeCategoryUnsupported:
		return ErrCategoryUnsupported
	case OutcomeCategoryInvalid:
		return &CategoryError{Available: o.Available}
	case OutcomeOperationUnsupported:
		return ErrOperationUnsupported
	case OutcomeProviderUnknown:
		return ErrProviderUnknown
	case OutcomeProviderFault:
		return ErrProviderFault
	default:
		return ErrProviderFault
	}
}

// Page returns the outcome's items as a Page.
func (o Outcome) Page() Page {
	return Page{Items: o.Items, Total: o.Total}
}

// Messages reported to callers for failed outcomes.
const (
	MsgProviderUnknown = "Selected Site Not Available"
	MsgCategoryInvalid = "Selected category not available."
	MsgEmpty           = "Result not found."
	MsgBlocked         = "Website Blocked Change IP or Website Domain."
)

// Message returns the caller-facing message for a failed outcome.
// Provider faults read like a block so internals never leak.
// It returns "" on success.
func (o Outcome) Message() string {
	switch o.Kind {
	case OutcomeSuccess:
		return ""
	case OutcomeProviderUnknown:
		return MsgProviderUnknown
	case OutcomeOperationUnsupported:
		return fmt.Sprintf("%s search not available for %s.", o.Operation.Title(), o.ProviderID)
	case OutcomeCategoryUnsupported:
		label := string(o.Operation)
		if o.Operation == OpRecent {
			label = o.Operation.Title()
		}
		return fmt.Sprintf("Search by %s category not available for %s.", label, o.ProviderID)
	case OutcomeCategoryInvalid:
		return MsgCategoryInvalid
	case OutcomeEmpty:
		return MsgEmpty
	default:
		return MsgBlocked
	}
}
