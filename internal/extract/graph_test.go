package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/mppimport/internal/buildtool"
	"github.com/vk/mppimport/internal/model"
)

// The types below mimic a live build graph: accessors are plain Go methods,
// found by the probe through reflection.

type fakeProject struct {
	name     string
	version  string
	kotlin   *kotlinExtension
	tasks    fakeTasks
	configs  map[string]*fakeConfiguration
	taskErrs map[string]error
}

func (p *fakeProject) Name() string { return p.name }

func (p *fakeProject) GetPluginVersion() (string, bool) { return p.version, p.version != "" }

func (p *fakeProject) Extension(name string) (any, bool) {
	if name != "kotlin" || p.kotlin == nil {
		return nil, false
	}
	return p.kotlin, true
}

func (p *fakeProject) Tasks() buildtool.TaskRegistry { return fakeRegistry{p} }

func (p *fakeProject) Configurations() buildtool.ConfigurationContainer { return fakeContainer(p.configs) }

type fakeTasks map[string]buildtool.Task

type fakeRegistry struct{ p *fakeProject }

func (r fakeRegistry) FindByName(name string) (buildtool.Task, bool, error) {
	if err := r.p.taskErrs[name]; err != nil {
		return nil, false, err
	}
	t, ok := r.p.tasks[name]
	return t, ok, nil
}

type fakeContainer map[string]*fakeConfiguration

func (c fakeContainer) FindByName(name string) (buildtool.Configuration, bool) {
	cfg, ok := c[name]
	if !ok {
		return nil, false
	}
	return cfg, true
}

type fakeConfiguration struct {
	name string
	deps []buildtool.ExternalDependency
	err  error
}

func (c *fakeConfiguration) Name() string { return c.name }
func (c *fakeConfiguration) CanBeResolved() bool { return true }

type fakeResolver struct{ calls []string }

func (r *fakeResolver) Resolve(_ context.Context, cfg buildtool.Configuration) ([]buildtool.ExternalDependency, error) {
	r.calls = append(r.calls, cfg.Name())
	fc := cfg.(*fakeConfiguration)
	return fc.deps, fc.err
}

type kotlinExtension struct {
	sourceSets []*kotlinSourceSet
	targets    []*kotlinTarget
	panicOn    string
}

func (e *kotlinExtension) GetSourceSets() []*kotlinSourceSet { return e.sourceSets }

func (e *kotlinExtension) Targets() []*kotlinTarget {
	if e.panicOn == "Targets" {
		panic("target container is not configured")
	}
	return e.targets
}

type kotlinSourceSet struct {
	name      string
	kotlin    []string
	resources []string
}

func (s *kotlinSourceSet) Name() string { return s.name }
func (s *kotlinSourceSet) Kotlin() []string { return s.kotlin }
func (s *kotlinSourceSet) Resources() []string { return s.resources }

type kotlinTarget struct {
	name         string
	platform     string
	classifier   any
	artifacts    string
	compilations []*kotlinCompilation
}

func (t *kotlinTarget) Name() string { return t.name }
func (t *kotlinTarget) PlatformType() string { return t.platform }
func (t *kotlinTarget) DisambiguationClassifier() any { return t.classifier }
func (t *kotlinTarget) ArtifactsTaskName() string { return t.artifacts }
func (t *kotlinTarget) Compilations() []*kotlinCompilation { return t.compilations }

type kotlinCompilation struct {
	name       string
	sourceSets []*kotlinSourceSet
	task       string
	output     *compilationOutput
	compileCfg string
}

func (c *kotlinCompilation) Name() string { return c.name }
func (c *kotlinCompilation) AllKotlinSourceSets() []*kotlinSourceSet { return c.sourceSets }
func (c *kotlinCompilation) CompileKotlinTaskName() string { return c.task }
func (c *kotlinCompilation) Output() *compilationOutput { return c.output }

func (c *kotlinCompilation) CompileDependencyFilesConfigurationName() (string, bool) {
	return c.compileCfg, c.compileCfg != ""
}

type compilationOutput struct {
	classesDirs []string
}

func (o *compilationOutput) ClassesDirs() []string { return o.classesDirs }

// KotlinCompile carries the classpath only compile tasks of this type expose.
type KotlinCompile struct {
	name      string
	classpath []string
}

func (t *KotlinCompile) Name() string { return t.name }
func (t *KotlinCompile) DestinationDir() string { return "out/" + t.name }
func (t *KotlinCompile) SerializedCompilerArguments() []string { return []string{"-Xmulti-platform"} }
func (t *KotlinCompile) DefaultSerializedCompilerArguments() []string { return []string{} }
func (t *KotlinCompile) Classpath() []string { return t.classpath }

type jarTask struct {
	name    string
	archive string
}

func (t *jarTask) Name() string { return t.name }
func (t *jarTask) ArchiveFile() (string, error) { return t.archive, nil }

func newGraph() (*fakeProject, *fakeResolver) {
	common := &kotlinSourceSet{name: "commonMain", kotlin: []string{"src/commonMain/kotlin"}, resources: []string{"src/commonMain/resources"}}
	jvmMain := &kotlinSourceSet{name: "jvmMain", kotlin: []string{"src/jvmMain/kotlin"}, resources: []string{}}

	project := &fakeProject{
		name:    ":lib",
		version: "1.3.50",
		kotlin: &kotlinExtension{
			sourceSets: []*kotlinSourceSet{common, jvmMain},
			targets: []*kotlinTarget{
				{
					name:      "metadata",
					platform:  "common",
					artifacts: "metadataJar",
					compilations: []*kotlinCompilation{{
						name:       "main",
						sourceSets: []*kotlinSourceSet{common},
						task:       "compileKotlinMetadata",
						output:     &compilationOutput{classesDirs: []string{"build/classes/kotlin/metadata/main"}},
					}},
				},
				{
					name:       "jvm",
					platform:   "jvm",
					classifier: "jvm",
					artifacts:  "jvmJar",
					compilations: []*kotlinCompilation{{
						name:       "main",
						sourceSets: []*kotlinSourceSet{common, jvmMain},
						task:       "compileKotlinJvm",
						output:     &compilationOutput{classesDirs: []string{"build/classes/kotlin/jvm/main"}},
						compileCfg: "jvmCompileClasspath",
					}},
				},
			},
		},
		tasks: fakeTasks{
			"compileKotlinMetadata": &KotlinCompile{name: "compileKotlinMetadata"},
			"compileKotlinJvm":      &KotlinCompile{name: "compileKotlinJvm", classpath: []string{"/libs/a.jar"}},
			"metadataJar":           &jarTask{name: "metadataJar", archive: "build/libs/lib-metadata.jar"},
			"jvmJar":                &jarTask{name: "jvmJar", archive: "build/libs/lib-jvm.jar"},
		},
		configs: map[string]*fakeConfiguration{
			"jvmCompileClasspath": {
				name: "jvmCompileClasspath",
				deps: []buildtool.ExternalDependency{{Group: "org.example", Name: "core", Version: "2.0", Files: []string{"/repo/core-2.0.jar"}}},
			},
		},
	}
	return project, &fakeResolver{}
}

func TestBuild_ReflectedGraph(t *testing.T) {
	project, resolver := newGraph()

	m, err := NewBuilder(resolver, nil).Build(context.Background(), model.Name, project)
	require.NoError(t, err)

	assert.Equal(t, []string{"jvmCompileClasspath"}, resolver.calls)

	require.Len(t, m.Targets, 2)
	metadata, jvm := m.Targets[0], m.Targets[1]
	assert.Equal(t, "", metadata.DisambiguationClassifier)
	assert.Equal(t, model.PlatformCommon, metadata.Platform)
	assert.Equal(t, "build/libs/lib-metadata.jar", metadata.Jar.ArchiveFile)

	require.Len(t, jvm.Compilations, 1)
	main := jvm.Compilations[0]
	assert.Same(t, jvm, main.Target())
	assert.Equal(t, "jvm", main.TargetName)
	assert.Equal(t, []string{"commonMain", "jvmMain"}, main.SourceSets)
	assert.Equal(t, "out/compileKotlinJvm", main.Output.DestinationDir)
	assert.Equal(t, []string{"/libs/a.jar"}, main.DependencyClasspath)
	assert.Equal(t, []string{"-Xmulti-platform"}, main.Arguments.Current)
	assert.Equal(t, []string{}, main.Arguments.Default)
	require.Len(t, main.Dependencies, 1)
	assert.Equal(t, "org.example:core:2.0", main.Dependencies[0].ID)
	assert.Equal(t, []string{"/repo/core-2.0.jar"}, main.Dependencies[0].Files)

	common, _ := m.SourceSet("commonMain")
	assert.Equal(t, model.PlatformCommon, common.Platform)
	assert.Len(t, common.Dependencies, 1)

	jvmMain, _ := m.SourceSet("jvmMain")
	assert.Equal(t, model.PlatformJVM, jvmMain.Platform)
}

func TestBuild_ModelDoesNotShareGraphSlices(t *testing.T) {
	project, resolver := newGraph()

	m, err := NewBuilder(resolver, nil).Build(context.Background(), model.Name, project)
	require.NoError(t, err)

	project.kotlin.sourceSets[0].kotlin[0] = "mutated"
	project.kotlin.sourceSets[0].resources[0] = "mutated"
	project.kotlin.targets[1].compilations[0].output.classesDirs[0] = "mutated"
	project.tasks["compileKotlinJvm"].(*KotlinCompile).classpath[0] = "mutated"
	project.configs["jvmCompileClasspath"].deps[0].Files[0] = "mutated"

	common, ok := m.SourceSet("commonMain")
	require.True(t, ok)
	assert.Equal(t, []string{"src/commonMain/kotlin"}, common.SourceDirs)
	assert.Equal(t, []string{"src/commonMain/resources"}, common.ResourceDirs)

	main := m.Targets[1].Compilations[0]
	assert.Equal(t, []string{"build/classes/kotlin/jvm/main"}, main.Output.ClassesDirs)
	assert.Equal(t, []string{"/libs/a.jar"}, main.DependencyClasspath)
	assert.Equal(t, []string{"/repo/core-2.0.jar"}, main.Dependencies[0].Files)
}

func TestBuild_TaskLookupFailureAbortsImport(t *testing.T) {
	project, resolver := newGraph()
	project.taskErrs = map[string]error{"compileKotlinJvm": errors.New("task graph is locked")}

	m, err := NewBuilder(resolver, nil).Build(context.Background(), model.Name, project)
	assert.Nil(t, m)
	var importErr *ImportError
	require.ErrorAs(t, err, &importErr)
	assert.Equal(t, PhaseTargets, importErr.Phase)
	assert.ErrorContains(t, err, "find task 'compileKotlinJvm': task graph is locked")
}

func TestBuild_PanicBecomesImportError(t *testing.T) {
	project, resolver := newGraph()
	project.kotlin.panicOn = "Targets"

	m, err := NewBuilder(resolver, nil).Build(context.Background(), model.Name, project)
	assert.Nil(t, m)
	var importErr *ImportError
	require.ErrorAs(t, err, &importErr)
	assert.Equal(t, ":lib", importErr.Project)
	assert.Equal(t, PhaseTargets, importErr.Phase)
	assert.ErrorContains(t, err, "target container is not configured")
}

func TestBuild_ResolverErrorIsWrapped(t *testing.T) {
	project, resolver := newGraph()
	cause := errors.New("offline")
	project.configs["jvmCompileClasspath"].err = cause

	_, err := NewBuilder(resolver, nil).Build(context.Background(), model.Name, project)
	require.ErrorIs(t, err, cause)
}
