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

package archive

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/blevesearch/bleve/v2"
	log "github.com/sirupsen/logrus"
)

//
type SearchResult struct {
	Hits     []*Entry `json:"hits"`
	Total    uint64   `json:"total"`
	Complete bool     `json:"complete"`
}

// Search runs a query string search against the index. Plain terms match any
// text field, fields can be addressed directly, e.g. "player:may" or
// "caught:>100".
func (i *Index) Search(term string, max int) (*SearchResult, error) {

	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("no search term")
	}
	if max < 1 {
		return nil, fmt.Errorf("invalid maximum number of hits: %d", max)
	}

	log.Debugf("searching for '%s'", term)
	query := bleve.NewQueryStringQuery(term)
	search := bleve.NewSearchRequestOptions(query, max+1, 0, false)
	search.Fields = []string{"*"}
	res, err := i.index.Search(search)
	if err != nil {
		return nil, err
	}

	ret := &SearchResult{
		Hits:     make([]*Entry, len(res.Hits)),
		Total:    res.Total,
		Complete: true}

	for ix, h := range res.Hits {
		ret.Hits[ix] = entryFromFields(h.ID, h.Fields)
	}

	if len(ret.Hits) > max {
		ret.Hits = ret.Hits[:max]
		ret.Complete = false
	}

	return ret, nil
}

// bleve hands back stored numeric fields as float64
func entryFromFields(id string, fields map[string]interface{}) *Entry {

	ret := &Entry{Path: id}

	str := func(key string) string {
		if s, ok := fields[key].(string); ok {
			return s
		}
		return ""
	}
	num := func(key string) int {
		if f, ok := fields[key].(float64); ok {
			return int(f)
		}
		return 0
	}

	ret.Player = str("player")
	ret.TrainerID = str("trainerId")
	ret.Gender = str("gender")
	ret.Money = uint32(num("money"))
	ret.PlayTime = num("playTime")
	ret.Seen = num("seen")
	ret.Caught = num("caught")

	return ret
}

// Write writes a plain text listing of the hits, one line per save file.
func (r *SearchResult) Write(w io.Writer) {
	for _, h := range r.Hits {
		h.write(w)
	}
	fmt.Fprintf(w, "\ntotal hits: %d", r.Total)
	if !r.Complete {
		fmt.Fprintf(w, ", showing first %d", len(r.Hits))
	}
	fmt.Fprintln(w)
}

//
func (e *Entry) write(w io.Writer) {
	fmt.Fprintf(w, "%-40s %-10s %s  %9s  money %6d  seen %3d  caught %3d\n",
		e.Path, e.Player, e.TrainerID,
		time.Duration(e.PlayTime)*time.Second, e.Money, e.Seen, e.Caught)
}
