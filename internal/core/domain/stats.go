package domain

import "time"

// Counter tallies outcomes for one endpoint or provider.
type Counter struct {
	Requested            int `json:"requested"`
	Success              int `json:"success"`
	Empty                int `json:"empty"`
	Blocked              int `json:"blocked"`
	Fault                int `json:"fault"`
	NotAvailable         int `json:"not_available"`
	CategoryNotAvailable int `json:"category_not_available"`
}

// Add counts one outcome.
func (c *Counter) Add(kind OutcomeKind) {
	c.Requested++
	switch kind {
	case OutcomeSuccess:
		c.Success++
	case OutcomeEmpty:
		c.Empty++
	case OutcomeBlocked:
		c.Blocked++
	case OutcomeProviderFault:
		c.Fault++
	case OutcomeOperationUnsupported, OutcomeProviderUnknown:
		c.NotAvailable++
	case OutcomeCategoryUnsupported, OutcomeCategoryInvalid:
		c.CategoryNotAvailable++
	}
}

// Stats is a snapshot of outcome counters.
type Stats struct {
	// Since is when counting started.
	Since time.Time `json:"since"`
	// Endpoints is keyed by operation ("search") or "all/<operation>" for aggregates.
	Endpoints map[string]Counter `json:"endpoints"`
	// Providers is keyed by provider id.
	Providers map[string]Counter `json:"providers"`
}
