package config

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml"

	"github.com/kyouko-taiga/nirc/common"
	"github.com/kyouko-taiga/nirc/logging"
)

// tomlProjectFile is the top-level shape of a project file as encoded in TOML.
type tomlProjectFile struct {
	Project *tomlProject `toml:"project"`
}

type tomlProject struct {
	Name        string         `toml:"name"`
	Files       []string       `toml:"files"`
	NircVersion string         `toml:"nirc-version"`
	Profiles    []*tomlProfile `toml:"profiles"`
}

type tomlProfile struct {
	Name         string     `toml:"name"`
	LogLevel     string     `toml:"log-level"`
	Emit         string     `toml:"emit"`
	Output       string     `toml:"output,omitempty"`
	TargetTriple string     `toml:"target-triple,omitempty"`
	DefaultProf  bool       `toml:"default"`
	LastRun      *time.Time `toml:"last-run"`
}

// emitNames maps TOML emit-target name strings to enumerated emit targets.
var emitNames = map[string]int{
	"none": EmitNone,
	"text": EmitText,
	"llvm": EmitLLVM,
}

// LoadProject loads and validates the project file at path, selecting
// selectedProfile if it is non-empty or the project's default profile
// otherwise.
func LoadProject(path, selectedProfile string) (*Project, *Profile, error) {
	f, err := os.Open(filepath.Join(path, common.ProjectFileName))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	buff, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, nil, err
	}

	tpf := &tomlProjectFile{}
	if err := toml.Unmarshal(buff, tpf); err != nil {
		return nil, nil, err
	}

	if tpf.Project == nil {
		return nil, nil, errors.New("project file is missing a [project] section")
	}

	proj := &Project{ProjectRoot: path}
	if err := validateProject(proj, tpf.Project); err != nil {
		return nil, nil, err
	}

	proj.Name = tpf.Project.Name
	proj.Files = tpf.Project.Files

	prof, err := selectProfile(tpf.Project, selectedProfile)
	if err != nil {
		return nil, nil, err
	}

	proj.LastRunTime = prof.lastRun
	return proj, prof.profile, nil
}

func validateProject(proj *Project, tp *tomlProject) error {
	if tp.Name == "" {
		return fmt.Errorf("missing project name for project at %s", proj.ProjectRoot)
	}

	if !IsValidIdentifier(tp.Name) {
		return errors.New("project name must be a valid identifier")
	}

	if len(tp.Files) == 0 {
		return fmt.Errorf("project %s does not list any files to decode", tp.Name)
	}

	if tp.NircVersion != "" && tp.NircVersion != common.NircVersion {
		logging.LogSkipWarning(
			proj.ProjectRoot,
			fmt.Sprintf("project `%s` targets nirc v%s, running v%s", tp.Name, tp.NircVersion, common.NircVersion),
		)
	}

	return nil
}

// resolvedProfile bundles the converted profile together with its raw
// last-run timestamp, which lives outside of the Profile type proper.
type resolvedProfile struct {
	profile *Profile
	lastRun *time.Time
}

func selectProfile(tp *tomlProject, selectedProfile string) (*resolvedProfile, error) {
	if len(tp.Profiles) == 0 {
		return nil, fmt.Errorf("project %s must provide at least one profile", tp.Name)
	}

	if selectedProfile != "" {
		for _, prof := range tp.Profiles {
			if prof.Name == selectedProfile {
				return convertProfile(tp.Name, prof)
			}
		}

		return nil, fmt.Errorf("project `%s` has no profile `%s`", tp.Name, selectedProfile)
	}

	for _, prof := range tp.Profiles {
		if prof.DefaultProf {
			return convertProfile(tp.Name, prof)
		}
	}

	return nil, fmt.Errorf("project `%s` does not specify a default profile; `--profile` is required", tp.Name)
}

func convertProfile(projName string, tprof *tomlProfile) (*resolvedProfile, error) {
	if tprof.Name == "" {
		return nil, fmt.Errorf("profile in project %s must specify a name", projName)
	}

	result := &Profile{Name: tprof.Name, LogLevel: tprof.LogLevel, OutputPath: tprof.Output, TargetTriple: tprof.TargetTriple}

	emit := tprof.Emit
	if emit == "" {
		emit = "none"
	}

	emitVal, ok := emitNames[emit]
	if !ok {
		return nil, fmt.Errorf("%s is not a valid emit target", emit)
	}
	result.EmitTarget = emitVal

	if result.EmitTarget == EmitLLVM && result.OutputPath == "" {
		return nil, fmt.Errorf("profile `%s` must specify an output path to emit %s", tprof.Name, emit)
	}

	return &resolvedProfile{profile: result, lastRun: tprof.LastRun}, nil
}
