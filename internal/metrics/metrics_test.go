package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	return rec.Body.String()
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.BidsAccepted.Inc()
	m.BidsRejected.Add(3)
	m.Messages.WithLabelValues("text").Inc()
	m.DealsCompleted.WithLabelValues("true").Inc()
	m.ObserveRequest("POST", "/api/bids/:id/accept", 200, 15*time.Millisecond)

	body := scrape(t, m)
	assert.Contains(t, body, "sellfast_bids_accepted_total 1")
	assert.Contains(t, body, "sellfast_bids_rejected_total 3")
	assert.Contains(t, body, `sellfast_chat_messages_total{kind="text"} 1`)
	assert.Contains(t, body, `sellfast_deals_completed_total{success="true"} 1`)
	assert.Contains(t, body, `sellfast_http_request_duration_seconds_count{method="POST",route="/api/bids/:id/accept",status="200"} 1`)
	assert.Contains(t, body, "go_goroutines")
}

func TestMetrics_Isolated(t *testing.T) {
	a, b := New(), New()
	a.ChatsBlocked.Inc()

	assert.Contains(t, scrape(t, a), "sellfast_chats_blocked_total 1")
	assert.Contains(t, scrape(t, b), "sellfast_chats_blocked_total 0")
}
