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
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/xelalexv/gen3save/pkg/control"
	"github.com/xelalexv/gen3save/pkg/format"
	"github.com/xelalexv/gen3save/pkg/rom"
	"github.com/xelalexv/gen3save/pkg/save"
)

//
func NewShow() *Show {

	s := &Show{fs: afero.NewOsFs()}
	s.Runner = *NewRunner(
		"show -i|--input {file} [-t|--tables {file}] [-s|--storage] [-j|--json]",
		"show content of a save file",
		`
Use the show command to decode a save file and show player profile, Pokédex,
party, and optionally PC storage. The save file may be compressed with gzip,
zip, 7z, or xz. If ROM lookup tables are given, species, moves, and items are
shown by name.`,
		"", runnerHelpEpilogue, s.Run)

	s.AddBaseSettings()
	s.AddSetting(&s.Input, "input", "i", "", nil, "save input file", true)
	s.AddSetting(&s.Tables, "tables", "t", "", nil,
		"YAML file with ROM lookup tables", false)
	s.AddSetting(&s.Storage, "storage", "s", "", false,
		"also decode PC storage", false)
	s.AddSetting(&s.JSON, "json", "j", "", false, "output as JSON", false)

	return s
}

//
type Show struct {
	Runner
	//
	Input   string
	Tables  string
	Storage bool
	JSON    bool
	//
	fs afero.Fs
}

//
func (s *Show) Run() error {

	if err := s.ParseSettings(); err != nil {
		return err
	}

	tables, err := loadTables(s.fs, s.Tables)
	if err != nil {
		return err
	}

	diag := &save.Diagnostics{}
	sv, err := decodeFile(s.fs, s.Input, s.Storage, diag)
	if err != nil {
		return err
	}

	rep := control.NewReport(
		sv, rom.NewNames(tables, control.MissReporter(diag)), diag)

	if s.JSON {
		enc := json.NewEncoder(s.out())
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	rep.Write(s.out())
	return nil
}

//
func decodeFile(fs afero.Fs, path string, storage bool,
	diag *save.Diagnostics) (*save.Save, error) {

	r, err := format.OpenSave(fs, path)
	if err != nil {
		return nil, err
	}

	opts := []save.Option{save.WithLogger(log.WithField("file", path))}
	if storage {
		opts = append(opts, save.WithStorage())
	}

	return save.NewDecoder(opts...).Decode(r, diag)
}

// loadTables loads ROM lookup tables from path. An empty path yields nil,
// which makes name resolution fall back to numeric ids.
func loadTables(fs afero.Fs, path string) (rom.Lookup, error) {

	if path == "" {
		return nil, nil
	}

	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ret, err := rom.LoadTables(f)
	if err != nil {
		return nil, fmt.Errorf("cannot load lookup tables from '%s': %v", path, err)
	}

	log.WithField("tables", ret.Names()).Debug("lookup tables loaded")
	return ret, nil
}

//
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
