package snapshot

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/mppimport/internal/buildtool"
	"github.com/vk/mppimport/internal/ctxlog"
)

// Loader reads snapshot files.
type Loader struct{}

// NewLoader creates a new snapshot loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot is used to decode the top-level blocks of any snapshot file.
type fileRoot struct {
	Projects []*hclProject `hcl:"project,block"`
}

type hclProject struct {
	Name           string              `hcl:"name,label"`
	PluginVersion  string              `hcl:"plugin_version,optional"`
	Tasks          []*hclBlock         `hcl:"task,block"`
	Configurations []*hclConfiguration `hcl:"configuration,block"`
	Extensions     []*hclBlock         `hcl:"extension,block"`
}

type hclBlock struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

type hclConfiguration struct {
	Name         string   `hcl:"name,label"`
	Resolvable   *bool    `hcl:"resolvable,optional"`
	Dependencies []string `hcl:"dependencies,optional"`
	Error        string   `hcl:"error,optional"`
}

// Load parses every .hcl file under the given paths and returns the
// projects they declare, in file order.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]*Project, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Snapshot loader started.", "path_count", len(paths))

	files, err := findSnapshotFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered snapshot files.", "count", len(files))

	parser := hclparse.NewParser()
	var projects []*Project
	seen := make(map[string]string)

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse snapshot file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode snapshot file %s: %w", file, diags)
		}

		for _, hp := range root.Projects {
			if prev, dup := seen[hp.Name]; dup {
				return nil, fmt.Errorf("project %q declared in both %s and %s", hp.Name, prev, file)
			}
			seen[hp.Name] = file

			p, err := translateProject(hp)
			if err != nil {
				return nil, fmt.Errorf("in snapshot file %s: %w", file, err)
			}
			projects = append(projects, p)
		}
	}

	logger.Debug("Snapshot loading complete.", "projects", len(projects))
	return projects, nil
}

// LoadProject loads exactly one project from the given paths.
func (l *Loader) LoadProject(ctx context.Context, paths ...string) (buildtool.Project, error) {
	projects, err := l.Load(ctx, paths...)
	if err != nil {
		return nil, err
	}
	if len(projects) != 1 {
		return nil, fmt.Errorf("expected exactly one project, found %d", len(projects))
	}
	return projects[0], nil
}

func translateProject(hp *hclProject) (*Project, error) {
	p := &Project{
		name:           hp.Name,
		pluginVersion:  hp.PluginVersion,
		tasks:          make(map[string]*Object, len(hp.Tasks)),
		configurations: make(map[string]*Configuration, len(hp.Configurations)),
		extensions:     make(map[string]*Object, len(hp.Extensions)),
	}

	for _, t := range hp.Tasks {
		if _, dup := p.tasks[t.Name]; dup {
			return nil, fmt.Errorf("project %q: duplicate task %q", hp.Name, t.Name)
		}
		obj, diags := newObject("task", t.Name, t.Body)
		if diags.HasErrors() {
			return nil, fmt.Errorf("project %q, task %q: %w", hp.Name, t.Name, diags)
		}
		p.tasks[t.Name] = obj
	}

	for _, e := range hp.Extensions {
		if _, dup := p.extensions[e.Name]; dup {
			return nil, fmt.Errorf("project %q: duplicate extension %q", hp.Name, e.Name)
		}
		obj, diags := newObject("extension", e.Name, e.Body)
		if diags.HasErrors() {
			return nil, fmt.Errorf("project %q, extension %q: %w", hp.Name, e.Name, diags)
		}
		p.extensions[e.Name] = obj
	}

	for _, c := range hp.Configurations {
		if _, dup := p.configurations[c.Name]; dup {
			return nil, fmt.Errorf("project %q: duplicate configuration %q", hp.Name, c.Name)
		}
		cfg := &Configuration{name: c.Name, resolvable: true, failure: c.Error}
		if c.Resolvable != nil {
			cfg.resolvable = *c.Resolvable
		}
		for _, coords := range c.Dependencies {
			d, err := parseCoordinates(coords)
			if err != nil {
				return nil, fmt.Errorf("project %q, configuration %q: %w", hp.Name, c.Name, err)
			}
			cfg.dependencies = append(cfg.dependencies, d)
		}
		p.configurations[c.Name] = cfg
	}

	return p, nil
}

// findSnapshotFiles walks all given paths and returns a flat list of all
// .hcl files found. Paths that do not exist are skipped.
func findSnapshotFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			if filepath.Ext(path) == ".hcl" {
				add(path)
			}
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && filepath.Ext(p) == ".hcl" {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return allFiles, nil
}
