package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/vk/mppimport/internal/publish"
)

// Run imports every project of the snapshot and publishes the models. A
// project whose import fails is reported and the remaining projects are
// still imported; Run then returns all failures joined.
func (a *App) Run(ctx context.Context) (err error) {
	ctx = a.Context(ctx)
	a.logger.Debug("App.Run method started.", "snapshot", a.config.SnapshotPath)

	projects, err := a.loader.Load(ctx, a.config.SnapshotPath)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}
	if len(projects) == 0 {
		a.logger.Warn("No projects found in snapshot, nothing to import.")
		return nil
	}

	publisher, closeFn, err := a.publishers(ctx)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, closeFn())
	}()

	var failures []error
	for _, project := range projects {
		m, buildErr := a.builder.Build(ctx, a.config.ModelName, project)
		if buildErr != nil {
			a.logger.Error("Import failed.", "project", project.Name(), "error", buildErr)
			failures = append(failures, buildErr)
			continue
		}
		if pubErr := publisher.Publish(ctx, project.Name(), m); pubErr != nil {
			failures = append(failures, fmt.Errorf("failed to publish model of project %q: %w", project.Name(), pubErr))
			return errors.Join(failures...)
		}
	}

	a.logger.Info("Import finished.", "projects", len(projects), "failed", len(failures))
	return errors.Join(failures...)
}

// publishers assembles the configured sinks. The returned close function
// releases them.
func (a *App) publishers(ctx context.Context) (publish.Multi, func() error, error) {
	var (
		sinks   publish.Multi
		closers []func() error
	)
	closeAll := func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = append(errs, closers[i]())
		}
		return errors.Join(errs...)
	}

	if a.config.OutputPath != "" {
		f, err := os.Create(a.config.OutputPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create output file: %w", err)
		}
		closers = append(closers, f.Close)
		sinks = append(sinks, publish.NewJSONWriter(f))
	} else {
		sinks = append(sinks, publish.NewJSONWriter(a.outW))
	}

	if a.config.PublishURL != "" {
		sio, err := publish.DialSocketIO(ctx, publish.SocketIOConfig{
			URL:     a.config.PublishURL,
			Event:   a.config.PublishEvent,
			Timeout: a.config.PublishTimeout,
		})
		if err != nil {
			return nil, nil, errors.Join(err, closeAll())
		}
		closers = append(closers, sio.Close)
		sinks = append(sinks, sio)
	}

	if a.config.S3.Enabled() {
		s3, err := publish.NewS3(a.config.S3)
		if err != nil {
			return nil, nil, errors.Join(err, closeAll())
		}
		sinks = append(sinks, s3)
	}

	a.logger.Debug("Publishers configured.", "count", len(sinks))
	return sinks, closeAll, nil
}
