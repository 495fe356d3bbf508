package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/vk/mppimport/internal/ctxlog"
	"github.com/vk/mppimport/internal/model"
)

// JSONWriter writes each model as an indented JSON envelope.
type JSONWriter struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewJSONWriter creates a JSONWriter over w.
func NewJSONWriter(w io.Writer) *JSONWriter {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return &JSONWriter{enc: enc}
}

// Publish implements Publisher.
func (j *JSONWriter) Publish(ctx context.Context, project string, m *model.Model) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if err := j.enc.Encode(envelope(project, m)); err != nil {
		return fmt.Errorf("encode model of project %q: %w", project, err)
	}
	ctxlog.FromContext(ctx).Debug("Model written.", "project", project)
	return nil
}
