/*
   Gen3Save - Generation III cartridge save decoder
   Copyright (c) 2021, Alexander Vollschwitz

   This file is part of Gen3Save.

   Gen3Save is free software: you can redistribute it and/or modify
   it under the terms of the GNU General Public License as published by
   the Free Software Foundation, either version 3 of the License, or
   (at your option) any later version.

   Gen3Save is distributed in the hope that it will be useful,
   but WITHOUT ANY WARRANTY; without even the implied warranty of
   MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
   GNU General Public License for more details.

   You should have received a copy of the GNU General Public License
   along with Gen3Save. If not, see <http://www.gnu.org/licenses/>.
*/

package run

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/xelalexv/gen3save/pkg/archive"
	"github.com/xelalexv/gen3save/pkg/control"
)

//
func NewServe() *Serve {

	s := &Serve{}
	s.Runner = *NewRunner(
		`serve [-a|--address {address}] [-r|--repo {dir}] [-x|--index {dir}]
      [-t|--tables {file}]`,
		"serve HTTP API for decoding saves",
		`
Use the serve command to start an HTTP API server for decoding save files. Saves
can either be uploaded, or be taken from a repository directory. When an index
directory is given in addition to the repository, all saves in the repository
are indexed and can be searched.`,
		"", runnerHelpEpilogue, s.Run)

	s.AddBaseSettings()
	s.AddAddressSetting()
	s.AddSetting(&s.Repo, "repo", "r", "", nil,
		"directory with save files", false)
	s.AddSetting(&s.Index, "index", "x", "", nil,
		"directory for search index, requires repo", false)
	s.AddSetting(&s.Tables, "tables", "t", "", nil,
		"YAML file with ROM lookup tables", false)

	return s
}

//
type Serve struct {
	Runner
	//
	Repo   string
	Index  string
	Tables string
}

//
func (s *Serve) Run() error {

	if err := s.ParseSettings(); err != nil {
		return err
	}

	if s.Index != "" && s.Repo == "" {
		return fmt.Errorf("search index requires a repo")
	}

	tables, err := loadTables(afero.NewOsFs(), s.Tables)
	if err != nil {
		return err
	}

	var index *archive.Index
	if s.Index != "" {
		if index, err = archive.NewIndex(s.Index, s.Repo); err != nil {
			return err
		}
		defer index.Stop()
		if err := index.Start(); err != nil {
			return err
		}
	}

	api := control.NewAPIServer(s.Address, s.Repo, index, tables)

	go func() {
		waitForSignal()
		if err := api.Stop(); err != nil {
			log.Errorf("error stopping API server: %v", err)
		}
	}()

	return api.Serve()
}
