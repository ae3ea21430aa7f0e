package eventbus

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/permlattice/permlattice/internal/permission"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPOutput(t *testing.T) {
	output := NewHTTPOutput("http://example.com", "token123", 10, 5*time.Second)
	defer output.Close()

	assert.Equal(t, "http://example.com", output.url)
	assert.Equal(t, "token123", output.authToken)
	assert.Equal(t, 10, output.batchSize)
	assert.NotNil(t, output.client)
}

func TestHTTPOutputWriteFlushesAtBatchSize(t *testing.T) {
	var mu sync.Mutex
	received := make([]webhookEvent, 0)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token123", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var batch []webhookEvent
		require.NoError(t, json.Unmarshal(body, &batch))

		mu.Lock()
		received = append(received, batch...)
		mu.Unlock()

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	output := NewHTTPOutput(server.URL, "token123", 2, time.Hour)
	defer output.Close()

	require.NoError(t, output.Write(&permission.Event{Kind: permission.NodeSet, ObjectName: "alice", Node: permission.NewNode("a", true)}))
	require.NoError(t, output.Write(&permission.Event{Kind: permission.NodeSet, ObjectName: "alice", Node: permission.NewNode("b", true)}))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(received) == 2
	}, time.Second, 10*time.Millisecond)
}

func TestDispatcherEmitFansOutWithoutBlocking(t *testing.T) {
	var mu sync.Mutex
	var got []permission.Event

	d := NewDispatcher()
	d.Register(writeFunc(func(e *permission.Event) error {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, *e)
		return nil
	}))

	d.Emit(permission.Event{Kind: permission.NodeSet, ObjectName: "alice"})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	}, time.Second, 10*time.Millisecond)
}

type writeFunc func(*permission.Event) error

func (f writeFunc) Write(e *permission.Event) error { return f(e) }
func (writeFunc) Close() error                      { return nil }
