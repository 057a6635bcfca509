package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"

	"github.com/kyouko-taiga/nirc/common"
)

// InitProject creates a new project file with the given name at path.
func InitProject(name, path string) error {
	projFilePath := filepath.Join(path, common.ProjectFileName)

	if _, err := os.Stat(projFilePath); err == nil {
		return errors.New("project file already exists")
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("project file error: %s", err.Error())
	}

	if !IsValidIdentifier(name) {
		return errors.New("project name must be a valid identifier")
	}

	proj := &tomlProject{
		Name:        name,
		NircVersion: common.NircVersion,
		Files:       []string{"*.nir"},
		Profiles: []*tomlProfile{
			{Name: "dump", LogLevel: "verbose", Emit: "text", DefaultProf: true},
		},
	}

	f, err := os.Create(projFilePath)
	if err != nil {
		return fmt.Errorf("error creating project file: %s", err.Error())
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(&tomlProjectFile{Project: proj}); err != nil {
		return fmt.Errorf("error encoding TOML: %s", err.Error())
	}

	return nil
}
