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

	"github.com/xelalexv/gen3save/pkg/archive"
)

//
func NewSearch() *Search {

	s := &Search{}
	s.Runner = *NewRunner(
		`search -r|--repo {dir} -x|--index {dir} -t|--term {search term}
      [-n|--items {max results}]`,
		"search for saves in a repository",
		`
Use the search command to find saves in a repository. The index is brought up
to date with the repository before searching. Terms can address fields, e.g.
'player:may', 'caught:>100', or 'trainerId:12345'.`,
		"", runnerHelpEpilogue, s.Run)

	s.AddBaseSettings()
	s.AddSetting(&s.Repo, "repo", "r", "", nil,
		"directory with save files", true)
	s.AddSetting(&s.Index, "index", "x", "", nil,
		"directory for search index", true)
	s.AddSetting(&s.Term, "term", "t", "", nil, "search term", true)
	s.AddSetting(&s.Items, "items", "n", "", 100,
		"max number of search results to return", false)

	return s
}

//
type Search struct {
	Runner
	//
	Repo  string
	Index string
	Term  string
	Items int
}

//
func (s *Search) Run() error {

	if err := s.ParseSettings(); err != nil {
		return err
	}

	index, err := archive.NewIndex(s.Index, s.Repo)
	if err != nil {
		return err
	}
	defer index.Stop()

	if err := index.Start(); err != nil {
		return err
	}

	res, err := index.Search(s.Term, s.Items)
	if err != nil {
		return err
	}

	out := s.out()
	fmt.Fprintln(out)
	res.Write(out)

	return nil
}
