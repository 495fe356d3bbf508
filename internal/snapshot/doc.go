// Package snapshot loads recorded build-tool projects from HCL files and
// serves them through the buildtool contracts.
//
// A snapshot is what the importer would have seen in a live build: the
// project's tasks, its dependency configurations and its extensions. Task
// and extension blocks are schema-less. Their attributes and nested blocks
// become accessors of dynamic objects, so a snapshot recorded from any
// plugin version can be replayed and probed exactly like the live graph:
//
//	project ":app" {
//	  plugin_version = "1.3.50"
//
//	  task "compileKotlinJvm" {
//	    type                                  = "KotlinCompile"
//	    destination_dir                       = "build/classes/kotlin/jvm/main"
//	    serialized_compiler_arguments         = ["-jvm-target", "1.8"]
//	    default_serialized_compiler_arguments = []
//	  }
//
//	  configuration "jvmCompileClasspath" {
//	    dependencies = ["org.jetbrains.kotlin:kotlin-stdlib:1.3.50"]
//	  }
//
//	  extension "kotlin" {
//	    source_set "commonMain" {
//	      kotlin    = ["src/commonMain/kotlin"]
//	      resources = ["src/commonMain/resources"]
//	    }
//	  }
//	}
//
// An attribute named compile_kotlin_task_name answers the accessor
// CompileKotlinTaskName; repeated labeled blocks such as source_set answer
// SourceSets with a list of objects; a single unlabeled block such as output
// answers Output with one object.
package snapshot
