// Package publish delivers built models to their consumers.
package publish

import (
	"context"
	"fmt"

	"github.com/vk/mppimport/internal/model"
)

// Publisher hands the model of one project to a consumer.
type Publisher interface {
	Publish(ctx context.Context, project string, m *model.Model) error
}

// Envelope is the document every sink emits.
type Envelope struct {
	Project   string       `json:"project"`
	ModelType string       `json:"modelType"`
	Model     *model.Model `json:"model"`
}

func envelope(project string, m *model.Model) Envelope {
	return Envelope{Project: project, ModelType: model.Name, Model: m}
}

// Multi publishes to each publisher in order and stops at the first failure.
type Multi []Publisher

// Publish implements Publisher.
func (ps Multi) Publish(ctx context.Context, project string, m *model.Model) error {
	for i, p := range ps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.Publish(ctx, project, m); err != nil {
			return fmt.Errorf("publisher #%d: %w", i, err)
		}
	}
	return nil
}
