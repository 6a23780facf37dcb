// Package workflowapi is the HTTP client for the remote approval workflow
// engine. Assignee-rule resolution, snapshot freezing and document numbering
// all happen engine-side; this layer only issues typed requests and
// translates failures into the domain error taxonomy.
package workflowapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/ggh0223/lias-client-sub001/internal/infrastructure/resilience"
)

// CallObserver records the outcome of one remote call; wired to prometheus
// in the observability package.
type CallObserver interface {
	ObserveRemoteCall(operation, outcome string, duration time.Duration)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	executor   *resilience.Executor
	observer   CallObserver
}

func New(baseURL string, executor *resilience.Executor, observer CallObserver) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		executor:   executor,
		observer:   observer,
	}
}
