package httpapi

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/custodia-labs/trawl/internal/core/domain"
	"github.com/custodia-labs/trawl/internal/core/ports/driving"
)

// paramError is a malformed or missing query parameter.
type paramError struct {
	name   string
	reason string
}

func (e *paramError) Error() string {
	return fmt.Sprintf("%s: %s", e.name, e.reason)
}

func requiredParam(q url.Values, name string) (string, error) {
	v := strings.TrimSpace(q.Get(name))
	if v == "" {
		return "", &paramError{name: name, reason: "field required"}
	}
	return v, nil
}

func intParam(q url.Values, name string, def int) (int, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &paramError{name: name, reason: "value is not a valid integer"}
	}
	return n, nil
}

// singleRequest reads the parameters of a single-provider route.
func singleRequest(q url.Values, op domain.Operation) (driving.Request, error) {
	var (
		req driving.Request
		err error
	)

	if req.Site, err = requiredParam(q, "site"); err != nil {
		return req, err
	}
	if op.TakesQuery() {
		if req.Query, err = requiredParam(q, "query"); err != nil {
			return req, err
		}
	}
	if op == domain.OpCategorySearch {
		if req.Category, err = requiredParam(q, "category"); err != nil {
			return req, err
		}
	} else {
		req.Category = q.Get("category")
	}
	if req.Limit, err = intParam(q, "limit", 0); err != nil {
		return req, err
	}
	if req.Page, err = intParam(q, "page", 1); err != nil {
		return req, err
	}
	return req, nil
}

// aggregateRequest reads the parameters of an /all route.
func aggregateRequest(q url.Values, op domain.Operation) (driving.Request, error) {
	var (
		req driving.Request
		err error
	)

	if op.TakesQuery() {
		if req.Query, err = requiredParam(q, "query"); err != nil {
			return req, err
		}
	}
	req.Category = q.Get("category")
	if req.Limit, err = intParam(q, "limit", 0); err != nil {
		return req, err
	}
	req.Page = 1
	return req, nil
}
