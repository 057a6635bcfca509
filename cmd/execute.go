package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ComedicChimera/olive"

	"github.com/kyouko-taiga/nirc/codegen"
	"github.com/kyouko-taiga/nirc/common"
	"github.com/kyouko-taiga/nirc/config"
	"github.com/kyouko-taiga/nirc/logging"
	"github.com/kyouko-taiga/nirc/module"
)

// TODO: implement commands
// check      validate a decoded module's structural invariants without
//            emitting anything
// watch       re-decode a project's files whenever they change

// Execute runs the main `nirc` application, returning the process exit code.
func Execute() int {
	cli := olive.NewCLI("nirc", "nirc decodes and inspects NIR intermediate representation files", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the decoder log level", false, []string{"silent", "error", "warning", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	decodeCmd := cli.AddSubcommand("decode", "decode one or more NIR files", true)
	decodeCmd.AddPrimaryArg("path", "a .nir file, or a directory containing a nir-project.toml", true)
	decodeCmd.AddStringArg("profile", "p", "the name of the project profile to run", false)
	decodeCmd.AddFlag("dump", "d", "print a textual dump of the decoded module")

	initCmd := cli.AddSubcommand("init", "create a new nirc project file", true)
	initCmd.AddPrimaryArg("name", "the name of the project", true)

	cli.AddSubcommand("version", "print the nirc version", false)

	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		logging.PrintErrorMessage("CLI Usage Error", err)
		return 1
	}

	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "decode":
		return execDecodeCommand(subResult, result.Arguments["loglevel"].(string))
	case "init":
		return execInitCommand(subResult)
	case "version":
		logging.PrintInfoMessage("nirc Version", common.NircVersion)
		return 0
	}

	logging.PrintErrorMessage("CLI Usage Error", fmt.Errorf("no command given"))
	return 1
}

// execDecodeCommand executes the `decode` subcommand and handles all errors.
func execDecodeCommand(result *olive.ArgParseResult, loglevel string) int {
	pathArg, _ := result.PrimaryArg()

	path, err := filepath.Abs(pathArg)
	if err != nil {
		logging.PrintErrorMessage("Path Error", err)
		return 1
	}

	dump := result.HasFlag("dump")

	info, err := os.Stat(path)
	if err != nil {
		logging.PrintErrorMessage("Path Error", err)
		return 1
	}

	if info.IsDir() {
		profArgVal, _ := result.Arguments["profile"]
		selectedProfile := ""
		if profArgVal != nil {
			selectedProfile = profArgVal.(string)
		}
		return execDecodeProject(path, selectedProfile, dump)
	}

	logging.Initialize(loglevel)
	logging.DisplayBeginPhase("Decoding")
	f, err := decodeOne(path)
	logging.DisplayEndPhase(err == nil)
	if err != nil {
		logging.LogDecodeError(path, 0, err.Error())
	} else if dump {
		dumpFile(path, f)
	}

	if !logging.ShouldProceed() {
		return 1
	}
	return 0
}

// execDecodeProject loads a project file and decodes every file it lists,
// applying the selected profile's log level and emit target.
func execDecodeProject(projectRoot, selectedProfile string, forceDump bool) int {
	proj, prof, err := config.LoadProject(projectRoot, selectedProfile)
	if err != nil {
		logging.PrintErrorMessage("Project Load Error", err)
		return 1
	}

	logging.Initialize(prof.LogLevel)
	logging.DisplayHeader(prof.Name)

	var gen *codegen.Generator
	if prof.EmitTarget == config.EmitLLVM {
		gen = codegen.NewGenerator(proj.Name)
		gen.Module().TargetTriple = prof.TargetTriple
	}

	for _, pattern := range proj.Files {
		matches, err := filepath.Glob(filepath.Join(proj.ProjectRoot, pattern))
		if err != nil {
			logging.LogConfigError("Project", err.Error())
			continue
		}
		if len(matches) == 0 {
			logging.LogSkipWarning(pattern, "matched no files")
			continue
		}

		for _, path := range matches {
			logging.DisplayBeginPhase("Decoding")
			f, err := decodeOne(path)
			logging.DisplayEndPhase(err == nil)
			if err != nil {
				logging.LogDecodeError(path, 0, err.Error())
				continue
			}

			switch {
			case forceDump || prof.EmitTarget == config.EmitText:
				dumpFile(path, f)
			case prof.EmitTarget == config.EmitLLVM:
				emitLLVM(gen, path, f)
			}
		}
	}

	if gen != nil && prof.OutputPath != "" {
		writeModule(gen, prof.OutputPath)
	}

	logging.DisplaySummary(logging.ShouldProceed())

	if !logging.ShouldProceed() {
		return 1
	}
	return 0
}

func decodeOne(path string) (*module.File, error) {
	return module.Load(path)
}

// dumpFile prints a textual rendering of a decoded module's definitions.
func dumpFile(path string, f *module.File) {
	logging.PrintInfoMessage("Decoded", fmt.Sprintf("%s (%d definitions)", path, len(f.Definitions)))
	for _, def := range f.Definitions {
		fmt.Println("  " + def.String())
	}
}

// emitLLVM lowers every definition in f into gen, reporting (but not
// aborting on) definitions the code generator does not yet support.
func emitLLVM(gen *codegen.Generator, path string, f *module.File) {
	for _, def := range f.Definitions {
		if err := gen.Emit(def); err != nil {
			codegen.LogUnsupported(path, err)
		}
	}
}

func writeModule(gen *codegen.Generator, outputPath string) {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		logging.LogConfigError("Output", err.Error())
		return
	}

	f, err := os.Create(outputPath)
	if err != nil {
		logging.LogConfigError("Output", err.Error())
		return
	}
	defer f.Close()

	if _, err := gen.Module().WriteTo(f); err != nil {
		logging.LogConfigError("Output", err.Error())
	}
}

// execInitCommand executes the `init` subcommand and handles all errors.
func execInitCommand(result *olive.ArgParseResult) int {
	name, _ := result.PrimaryArg()

	workDir, err := os.Getwd()
	if err != nil {
		logging.PrintErrorMessage("Path Error", err)
		return 1
	}

	if err := config.InitProject(name, workDir); err != nil {
		logging.PrintErrorMessage("Project Init Error", err)
		return 1
	}

	logging.PrintInfoMessage("Created", filepath.Join(workDir, common.ProjectFileName))
	return 0
}
