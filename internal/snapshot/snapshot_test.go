package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/mppimport/internal/buildtool"
	"github.com/vk/mppimport/internal/probe"
)

const appSnapshot = `
project ":app" {
  plugin_version = "1.3.50"

  task "compileKotlinJvm" {
    type                                  = "KotlinCompile"
    destination_dir                       = "build/classes/kotlin/jvm/main"
    serialized_compiler_arguments         = ["-jvm-target", "1.8"]
    default_serialized_compiler_arguments = []
    classpath                             = ["/libs/a.jar"]
    parallelism                           = 4
  }

  task "jvmJar" {
    type         = "Jar"
    archive_path = "build/libs/app-jvm.jar"
  }

  configuration "jvmCompileClasspath" {
    dependencies = ["org.jetbrains.kotlin:kotlin-stdlib:1.3.50", "com.example:lib:1.0:jdk8"]
  }

  configuration "detached" {
    resolvable = false
  }

  configuration "broken" {
    error = "Could not find com.example:missing:9.9"
  }

  extension "kotlin" {
    experimental {
      coroutines = "enable"
    }

    source_set "commonMain" {
      kotlin    = ["src/commonMain/kotlin"]
      resources = ["src/commonMain/resources"]
    }

    target "metadata" {
      platform_type             = "common"
      disambiguation_classifier = null
    }

    target "jvm" {
      platform_type             = "jvm"
      disambiguation_classifier = "jvm"

      compilation "main" {
        kotlin_source_sets = ["commonMain"]

        output {
          classes_dirs = ["build/classes/kotlin/jvm/main"]
        }
      }
    }
  }
}
`

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

func loadApp(t *testing.T) *Project {
	t.Helper()
	dir := writeFiles(t, map[string]string{"app.hcl": appSnapshot})
	projects, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	return projects[0]
}

func TestLoad_Project(t *testing.T) {
	p := loadApp(t)

	assert.Equal(t, ":app", p.Name())
	v, ok := p.KotlinPluginVersion()
	assert.True(t, ok)
	assert.Equal(t, "1.3.50", v)

	_, ok = p.Extension("android")
	assert.False(t, ok)
	_, ok = p.Extension("kotlin")
	assert.True(t, ok)
}

func TestLoad_PluginVersionIsProbeable(t *testing.T) {
	opt, err := probe.Get[string](loadApp(t), "KotlinPluginVersion")
	require.NoError(t, err)
	assert.Equal(t, "1.3.50", opt.OrElse(""))
}

func TestTasks(t *testing.T) {
	tasks := loadApp(t).Tasks()

	task, ok, err := tasks.FindByName("compileKotlinJvm")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "compileKotlinJvm", task.Name())
	assert.Equal(t, "KotlinCompile", probe.RuntimeTypeName(task))

	args, err := probe.Get[[]string](task, "SerializedCompilerArguments")
	require.NoError(t, err)
	assert.Equal(t, []string{"-jvm-target", "1.8"}, args.OrElse(nil))

	defaults, err := probe.Get[[]string](task, "DefaultSerializedCompilerArguments")
	require.NoError(t, err)
	got, present := defaults.Get()
	assert.True(t, present)
	assert.Empty(t, got)

	parallelism, err := probe.Get[int64](task, "Parallelism")
	require.NoError(t, err)
	assert.Equal(t, int64(4), parallelism.OrElse(0))

	_, ok, err = tasks.FindByName("jsJar")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestObject_Blocks(t *testing.T) {
	extAny, _ := loadApp(t).Extension("kotlin")

	sourceSets, err := probe.Get[[]any](extAny, "SourceSets")
	require.NoError(t, err)
	list := sourceSets.OrElse(nil)
	require.Len(t, list, 1)
	name, err := probe.Get[string](list[0], "Name")
	require.NoError(t, err)
	assert.Equal(t, "commonMain", name.OrElse(""))

	experimental, err := probe.Get[any](extAny, "Experimental")
	require.NoError(t, err)
	coroutines, err := probe.Get[string](experimental.OrElse(nil), "Coroutines")
	require.NoError(t, err)
	assert.Equal(t, "enable", coroutines.OrElse(""))

	targets, err := probe.Get[[]any](extAny, "Targets")
	require.NoError(t, err)
	require.Len(t, targets.OrElse(nil), 2)

	metadata := targets.OrElse(nil)[0]
	has, err := probe.Has(metadata, "DisambiguationClassifier")
	require.NoError(t, err)
	assert.True(t, has, "a null attribute is still an accessor")
	classifier, err := probe.Get[string](metadata, "DisambiguationClassifier")
	require.NoError(t, err)
	assert.False(t, classifier.IsPresent())

	missing, err := probe.Get[[]any](metadata, "Compilations")
	require.NoError(t, err)
	assert.False(t, missing.IsPresent())
}

func TestResolver(t *testing.T) {
	configs := loadApp(t).Configurations()
	ctx := context.Background()

	cfg, ok := configs.FindByName("jvmCompileClasspath")
	require.True(t, ok)
	assert.True(t, cfg.CanBeResolved())
	deps, err := Resolver{}.Resolve(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, []buildtool.ExternalDependency{
		{Group: "org.jetbrains.kotlin", Name: "kotlin-stdlib", Version: "1.3.50"},
		{Group: "com.example", Name: "lib", Version: "1.0", Classifier: "jdk8"},
	}, deps)

	detached, ok := configs.FindByName("detached")
	require.True(t, ok)
	assert.False(t, detached.CanBeResolved())

	broken, ok := configs.FindByName("broken")
	require.True(t, ok)
	_, err = Resolver{}.Resolve(ctx, broken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Could not find com.example:missing:9.9")

	_, ok = configs.FindByName("runtimeClasspath")
	assert.False(t, ok)
}

type foreignConfiguration struct{}

func (foreignConfiguration) Name() string        { return "foreign" }
func (foreignConfiguration) CanBeResolved() bool { return true }

func TestResolver_ForeignConfiguration(t *testing.T) {
	_, err := Resolver{}.Resolve(context.Background(), foreignConfiguration{})
	require.ErrorIs(t, err, ErrForeignConfiguration)
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{
			name:    "syntax error",
			files:   map[string]string{"a.hcl": `project ":a" {`},
			wantErr: "failed to parse snapshot file",
		},
		{
			name:    "unknown top-level block",
			files:   map[string]string{"a.hcl": `module "x" {}`},
			wantErr: "failed to decode snapshot file",
		},
		{
			name: "duplicate project",
			files: map[string]string{
				"a.hcl": `project ":a" {}`,
				"b.hcl": `project ":a" {}`,
			},
			wantErr: `project ":a" declared in both`,
		},
		{
			name:    "bad coordinates",
			files:   map[string]string{"a.hcl": `project ":a" { configuration "c" { dependencies = ["just-a-name"] } }`},
			wantErr: `invalid dependency coordinates "just-a-name"`,
		},
		{
			name:    "non-constant attribute",
			files:   map[string]string{"a.hcl": `project ":a" { task "t" { type = var.kind } }`},
			wantErr: `task "t"`,
		},
		{
			name: "duplicate task",
			files: map[string]string{"a.hcl": `
				project ":a" {
				  task "t" {}
				  task "t" {}
				}`},
			wantErr: `duplicate task "t"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := writeFiles(t, tc.files)
			_, err := NewLoader().Load(context.Background(), dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoad_MissingPathIsEmpty(t *testing.T) {
	projects, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestLoadProject_RequiresExactlyOne(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.hcl": `project ":a" {}`,
		"b.hcl": `project ":b" {}`,
	})
	_, err := NewLoader().LoadProject(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected exactly one project, found 2")
}

func TestSnakeCase(t *testing.T) {
	testCases := map[string]string{
		"Name":                               "name",
		"CompileKotlinTaskName":              "compile_kotlin_task_name",
		"DefaultSerializedCompilerArguments": "default_serialized_compiler_arguments",
		"JSTarget":                           "js_target",
		"Jvm8Target":                         "jvm8_target",
	}
	for in, want := range testCases {
		assert.Equal(t, want, snakeCase(in), in)
	}
}
