package capability

// Set is the accessor vocabulary for one plugin version range. Each field is
// an ordered alias list.
type Set struct {
	// Extension is the name under which the project registers the extension.
	Extension string

	// Extension level.
	SourceSets   []string
	Targets      []string
	Experimental []string
	Coroutines   []string

	// Source sets.
	SourceSetName []string
	KotlinDirs    []string
	ResourceDirs  []string

	// Targets.
	TargetName               []string
	PlatformType             []string
	DisambiguationClassifier []string
	Compilations             []string
	ArtifactsTaskName        []string
	ArchiveFile              []string

	// Compilations.
	CompilationName          []string
	CompilationSourceSets    []string
	CompileTaskName          []string
	CompileConfigurationName []string
	RuntimeConfigurationName []string
	Output                   []string
	ClassesDirs              []string
	ResourcesDir             []string
	DestinationDir           []string
	CurrentArguments         []string
	DefaultArguments         []string

	// ClasspathTypes are the concrete compile task types that carry an
	// auxiliary classpath accessor outside the public task contract.
	ClasspathTypes    []string
	ClasspathAccessor string
}

// required lists the alias lists a usable Set must fill, by concern name.
func (s *Set) required() map[string][]string {
	return map[string][]string{
		"source_sets":                s.SourceSets,
		"targets":                    s.Targets,
		"source_set_name":            s.SourceSetName,
		"kotlin_dirs":                s.KotlinDirs,
		"resource_dirs":              s.ResourceDirs,
		"target_name":                s.TargetName,
		"platform_type":              s.PlatformType,
		"disambiguation_classifier":  s.DisambiguationClassifier,
		"compilations":               s.Compilations,
		"artifacts_task_name":        s.ArtifactsTaskName,
		"archive_file":               s.ArchiveFile,
		"compilation_name":           s.CompilationName,
		"compilation_source_sets":    s.CompilationSourceSets,
		"compile_task_name":          s.CompileTaskName,
		"compile_configuration_name": s.CompileConfigurationName,
		"runtime_configuration_name": s.RuntimeConfigurationName,
		"output":                     s.Output,
		"classes_dirs":               s.ClassesDirs,
		"current_arguments":          s.CurrentArguments,
		"default_arguments":          s.DefaultArguments,
	}
}

// base returns the accessors shared by every supported plugin line.
func base() *Set {
	return &Set{
		Extension:    "kotlin",
		SourceSets:   []string{"SourceSets"},
		Targets:      []string{"Targets"},
		Experimental: []string{"Experimental"},
		Coroutines:   []string{"Coroutines"},

		SourceSetName: []string{"Name"},
		KotlinDirs:    []string{"Kotlin"},
		ResourceDirs:  []string{"Resources"},

		TargetName:               []string{"Name"},
		PlatformType:             []string{"PlatformType"},
		DisambiguationClassifier: []string{"DisambiguationClassifier"},
		Compilations:             []string{"Compilations"},
		ArtifactsTaskName:        []string{"ArtifactsTaskName"},
		ArchiveFile:              []string{"ArchivePath"},

		CompilationName:          []string{"Name"},
		CompilationSourceSets:    []string{"KotlinSourceSets"},
		CompileTaskName:          []string{"CompileKotlinTaskName"},
		CompileConfigurationName: []string{"CompileDependencyConfigurationName"},
		RuntimeConfigurationName: []string{"RuntimeDependencyConfigurationName"},
		Output:                   []string{"Output"},
		ClassesDirs:              []string{"ClassesDirs"},
		ResourcesDir:             []string{"ResourcesDir"},
		DestinationDir:           []string{"DestinationDir"},
		CurrentArguments:         []string{"SerializedCompilerArguments"},
		DefaultArguments:         []string{"DefaultSerializedCompilerArguments"},

		ClasspathTypes:    []string{"KotlinCompile", "KotlinCompileCommon", "Kotlin2JsCompile"},
		ClasspathAccessor: "Classpath",
	}
}

// Legacy is the vocabulary of plugin lines before 1.3.40.
func Legacy() *Set {
	return base()
}

// Current is the vocabulary from 1.3.40 on: source set membership moved to
// AllKotlinSourceSets and archive tasks report ArchiveFile, with the older
// names kept as fallbacks.
func Current() *Set {
	s := base()
	s.CompilationSourceSets = []string{"AllKotlinSourceSets", "KotlinSourceSets"}
	s.ArchiveFile = []string{"ArchiveFile", "ArchivePath"}
	s.CompileConfigurationName = []string{"CompileDependencyConfigurationName", "CompileDependencyFilesConfigurationName"}
	return s
}
