package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/permlattice/permlattice/internal/permission"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerRecordsAndServesMetrics(t *testing.T) {
	m := NewManager()
	m.RecordResolve("has_permission", true, 5*time.Millisecond)
	m.RecordEvent(permission.Event{Kind: permission.NodeSet})
	m.UpdateHolderCount("user", 3)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "permlattice_resolve_total")
	assert.Contains(t, body, "permlattice_events_total")
	assert.Contains(t, body, "permlattice_holders")
}

func TestSinkAdaptsManagerToEventSink(t *testing.T) {
	m := NewManager()
	var sink permission.EventSink = Sink{Manager: m}
	sink.Emit(permission.Event{Kind: permission.GroupRemove})
}
