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
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-multierror"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/xelalexv/gen3save/pkg/format"
	"github.com/xelalexv/gen3save/pkg/save"
	"github.com/xelalexv/gen3save/pkg/util"
)

// time to wait after the last file change before pending index updates get
// flushed
var flushBackoff = 3 * time.Second

//
const maxBatch = 100

//
func NewIndex(base, repo string) (*Index, error) {
	if ret, err := createOrOpen(base, repo); err != nil {
		return nil, err
	} else {
		return ret, nil
	}
}

//
func createOrOpen(base, repo string) (*Index, error) {

	var err error
	i := &Index{
		fs: afero.NewOsFs(),
		decoder: save.NewDecoder(
			save.WithLogger(log.WithField("component", "archive"))),
	}

	if i.base, err = filepath.Abs(base); err != nil {
		return nil, err
	}
	if i.repo, err = filepath.Abs(repo); err != nil {
		return nil, err
	}

	logger := log.WithFields(log.Fields{"base": i.base, "repo": i.repo})

	if _, err := os.Stat(i.base); err != nil {
		if os.IsNotExist(err) {
			logger.Info("creating new index")
			i.index, err = bleve.New(i.base, bleve.NewIndexMapping())
		}

		if err != nil {
			logger.Errorf("cannot create index: %v", err)
			return nil, err
		}

		logger.Info("new index created")
		i.empty = true

	} else {
		logger.Info("opening index")
		i.index, err = bleve.Open(i.base)
		if err != nil {
			logger.Errorf("cannot open index: %v", err)
			return nil, err
		}

		logger.Info("index opened")
	}

	i.batch = i.index.NewBatch()
	return i, nil
}

// Entry is what gets indexed for each save file in the repo.
type Entry struct {
	Path      string `json:"path"`
	Player    string `json:"player"`
	TrainerID string `json:"trainerId"`
	Gender    string `json:"gender"`
	Money     uint32 `json:"money"`
	PlayTime  int    `json:"playTime"`
	Seen      int    `json:"seen"`
	Caught    int    `json:"caught"`
}

//
func newEntry(path string, s *save.Save) *Entry {
	return &Entry{
		Path:      path,
		Player:    s.PlayerName,
		TrainerID: s.TrainerID.String(),
		Gender:    s.Gender.String(),
		Money:     s.Money,
		PlayTime:  int(s.PlayTime.Seconds()),
		Seen:      len(s.Pokedex.Seen()),
		Caught:    len(s.Pokedex.Caught()),
	}
}

// Index is a full text index over the save files in a repo directory. The
// mutex guards stopped, watcher, skipped and the pending batch. Handlers of the
// dir watcher and the initial walk both modify the batch.
type Index struct {
	base    string
	repo    string
	mutex   sync.Mutex
	stopped bool
	//
	fs      afero.Fs
	decoder *save.Decoder
	skipped *multierror.Error
	//
	index   bleve.Index
	empty   bool
	watcher *util.DirWatcher
	//
	batch      *bleve.Batch
	batchCount int
}

// Repo returns the absolute path of the save file repo.
func (i *Index) Repo() string {
	return i.repo
}

//
func (i *Index) Start() error {

	start := time.Now()
	log.Info("pruning index")
	if err := i.prune(); err != nil {
		return fmt.Errorf("error pruning index: %v", err)
	}
	log.WithField(
		"duration", time.Since(start)).Info("index pruning finished")

	start = time.Now()
	log.Info("updating index")
	if err := i.update(); err != nil {
		return fmt.Errorf("error updating index: %v", err)
	}
	log.WithField(
		"duration", time.Since(start)).Info("index update finished")

	if err := i.Skipped(); err != nil {
		log.Warnf("some save files could not be indexed: %v", err)
	}

	if err := i.startWatching(); err != nil {
		return fmt.Errorf("error starting repo watcher: %v", err)
	}

	if err := i.flushEvent(); err != nil {
		return err
	}

	if i.isStopped() {
		return fmt.Errorf("index stopped during start")
	}

	log.Info("index ready")
	return nil
}

//
// Stop stops watching the repo and closes the index. It may be called while
// Start is still running, Start then returns with an error.
func (i *Index) Stop() {

	i.mutex.Lock()
	if i.stopped {
		i.mutex.Unlock()
		return
	}
	i.stopped = true
	w := i.watcher
	i.watcher = nil
	i.mutex.Unlock()

	// the watcher routine may be waiting for the lock, so stop it unlocked
	if w != nil {
		w.Stop()
	}

	i.mutex.Lock()
	defer i.mutex.Unlock()
	if i.index != nil {
		i.index.Close()
	}
}

// Skipped returns the accumulated errors of all save files that could not be
// indexed so far, or nil if there were none.
func (i *Index) Skipped() error {
	i.mutex.Lock()
	defer i.mutex.Unlock()
	return i.skipped.ErrorOrNil()
}

//
func (i *Index) isStopped() bool {
	i.mutex.Lock()
	defer i.mutex.Unlock()
	return i.stopped
}

//
func (i *Index) prune() error {

	if i.empty {
		return nil
	}

	ix, err := i.index.Advanced()
	if err != nil {
		return err
	}

	rd, err := ix.Reader()
	if err != nil {
		return err
	}
	defer rd.Close()

	docs, err := rd.DocIDReaderAll()
	if err != nil {
		return err
	}
	defer docs.Close()

	for {
		d, err := docs.Next()
		if err != nil {
			return err
		}
		if d == nil {
			return nil
		}
		id, err := rd.ExternalID(d)
		if err != nil {
			return err
		}
		if _, err := os.Stat(filepath.Join(i.repo, id)); os.IsNotExist(err) {
			i.mutex.Lock()
			i.removeEntry(id)
			i.mutex.Unlock()
		}
	}
}

//
func (i *Index) update() error {

	var lastMod time.Time
	if !i.empty {
		if store, err := os.Stat(filepath.Join(i.base, "store")); err == nil {
			lastMod = store.ModTime()
			log.Debugf("last index mod time: %v", lastMod)
		}
	}

	i.empty = false

	return filepath.Walk(i.repo,

		func(path string, info os.FileInfo, err error) error {

			i.mutex.Lock()
			defer i.mutex.Unlock()

			if i.stopped {
				return fmt.Errorf("forced exit")
			}

			if err != nil {
				i.skip(path, err)
				return nil
			}

			if !info.IsDir() && format.IsSaveFile(path) &&
				info.ModTime().After(lastMod) {
				i.addEntry(i.makeRelative(path))
			}

			return nil
		})
}

//
func (i *Index) startWatching() error {
	log.Info("starting index repo watcher")
	w, err := util.NewDirWatcher(i.repo, format.IsSaveFile)
	if err != nil {
		return err
	}

	i.mutex.Lock()
	if i.stopped {
		i.mutex.Unlock()
		w.Stop()
		return fmt.Errorf("index stopped")
	}
	i.watcher = w
	i.mutex.Unlock()

	// fails if Stop got hold of the watcher in the meantime
	return w.Start(flushBackoff, i.watchEvent, i.flushEvent)
}

//
func (i *Index) watchEvent(evt fsnotify.Event) error {

	rel := i.makeRelative(evt.Name)
	log.WithFields(log.Fields{"path": rel, "op": evt.Op}).Debug("index update")

	i.mutex.Lock()
	defer i.mutex.Unlock()

	if i.stopped {
		return nil
	}

	switch {

	case evt.Op&(fsnotify.Create|fsnotify.Write) != 0:
		if info, err := os.Stat(evt.Name); err != nil {
			log.Errorf("cannot add new entry: %v", err)
		} else if !info.IsDir() {
			i.addEntry(rel)
		}

	case evt.Op&(fsnotify.Rename|fsnotify.Remove) != 0:
		i.removeEntry(rel)

	default:
		log.Debug("no index update required")
	}

	return nil
}

//
func (i *Index) flushEvent() error {
	i.mutex.Lock()
	defer i.mutex.Unlock()
	if i.stopped {
		return nil
	}
	return i.batched(true)
}

//
func (i *Index) addEntry(path string) error {

	logger := log.WithField("file", path)
	logger.Debug("adding new entry to index")

	entry, err := i.readEntry(path)
	if err != nil {
		i.skip(path, err)
		// a file that turned unreadable must not linger in the index
		i.batch.Delete(path)
		return i.batched(false)
	}

	if err := i.batch.Index(path, entry); err != nil {
		logger.Errorf("failed to batch entry add: %v", err)
		return err
	}

	return i.batched(false)
}

//
func (i *Index) readEntry(path string) (*Entry, error) {

	r, err := format.OpenSave(i.fs, filepath.Join(i.repo, path))
	if err != nil {
		return nil, err
	}

	s, err := i.decoder.Decode(r, nil)
	if err != nil {
		return nil, err
	}

	return newEntry(path, s), nil
}

//
func (i *Index) skip(path string, err error) {
	log.WithField("file", path).Warnf("skipping save file: %v", err)
	i.skipped = multierror.Append(i.skipped, fmt.Errorf("%s: %w", path, err))
}

//
func (i *Index) removeEntry(path string) error {
	log.WithField("file", path).Debug("removing deleted entry from index")
	i.batch.Delete(path)
	return i.batched(false)
}

// The caller needs to hold the mutex, same for add, remove and skip.
func (i *Index) batched(flush bool) error {

	if i.batchCount++; flush || i.batchCount > maxBatch {
		log.Debug("flushing pending index actions")
		if err := i.index.Batch(i.batch); err != nil {
			log.Errorf("failed to execute index batch: %v", err)
			return err
		}
		i.batch = i.index.NewBatch()
		i.batchCount = 0
	}

	return nil
}

//
func (i *Index) makeRelative(path string) string {
	if len(path) > len(i.repo) && strings.HasPrefix(path, i.repo) {
		return path[len(i.repo)+1:]
	}
	return path
}
