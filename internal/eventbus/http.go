package eventbus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/permlattice/permlattice/internal/permission"
)

// webhookEvent is the JSON wire shape posted to an HTTPOutput's URL —
// a flattened view of permission.Event, since Node itself has no
// exported fields to marshal.
type webhookEvent struct {
	Kind       string `json:"kind"`
	ObjectName string `json:"object_name"`
	Permission string `json:"permission,omitempty"`
	Value      bool   `json:"value,omitempty"`
	Transient  bool   `json:"transient"`
	GroupName  string `json:"group_name,omitempty"`
	Timestamp  int64  `json:"timestamp"`
}

// HTTPOutput batches events and POSTs them as JSON to a webhook URL
// on a timer, the same buffered-batch-plus-ticker shape the reference
// server uses for its own HTTP log shipping.
type HTTPOutput struct {
	url           string
	authToken     string
	batchSize     int
	flushInterval time.Duration
	client        *http.Client

	mu       sync.Mutex
	buffer   []webhookEvent
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewHTTPOutput starts a background flusher and returns a ready-to-use
// HTTPOutput.
func NewHTTPOutput(url, authToken string, batchSize int, flushInterval time.Duration) *HTTPOutput {
	o := &HTTPOutput{
		url:           url,
		authToken:     authToken,
		batchSize:     batchSize,
		flushInterval: flushInterval,
		client:        &http.Client{Timeout: 10 * time.Second},
		buffer:        make([]webhookEvent, 0, batchSize),
		stopChan:      make(chan struct{}),
	}
	o.wg.Add(1)
	go o.flusher()
	return o
}

func (o *HTTPOutput) Write(e *permission.Event) error {
	w := webhookEvent{
		Kind:       e.Kind.String(),
		ObjectName: e.ObjectName,
		Transient:  e.Transient,
		GroupName:  e.GroupName,
		Timestamp:  time.Now().Unix(),
	}
	if e.Kind != permission.GroupRemove {
		w.Permission = e.Node.Permission()
		w.Value = e.Node.Value()
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.buffer = append(o.buffer, w)
	if len(o.buffer) >= o.batchSize {
		return o.flushLocked()
	}
	return nil
}

func (o *HTTPOutput) flusher() {
	defer o.wg.Done()

	ticker := time.NewTicker(o.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			o.mu.Lock()
			if len(o.buffer) > 0 {
				_ = o.flushLocked()
			}
			o.mu.Unlock()
		case <-o.stopChan:
			o.mu.Lock()
			if len(o.buffer) > 0 {
				_ = o.flushLocked()
			}
			o.mu.Unlock()
			return
		}
	}
}

func (o *HTTPOutput) flushLocked() error {
	if len(o.buffer) == 0 {
		return nil
	}
	batch := make([]webhookEvent, len(o.buffer))
	copy(batch, o.buffer)
	o.buffer = o.buffer[:0]

	go o.sendBatch(batch)
	return nil
}

func (o *HTTPOutput) sendBatch(batch []webhookEvent) error {
	data, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("eventbus: marshal webhook batch: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, o.url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("eventbus: build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if o.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+o.authToken)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return fmt.Errorf("eventbus: send webhook batch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("eventbus: webhook endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

func (o *HTTPOutput) Close() error {
	close(o.stopChan)
	o.wg.Wait()
	return nil
}
