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

package util

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// Filter decides whether events for path should be passed on to the handler.
type Filter func(path string) bool

/*
	NewDirWatcher creates a new recursive file system watcher that will watch
	for changes in the directory tree rooted in dir. When new directories are
	added to that tree, they will be included in the watch. Only events for
	paths accepted by filter are passed on, a nil filter accepts everything.
	The watcher will not start until the Start method has been called.
*/
func NewDirWatcher(dir string, filter Filter) (*DirWatcher, error) {

	ret := &DirWatcher{
		filter: filter,
		done:   make(chan bool),
	}

	var err error
	if ret.watcher, err = fsnotify.NewWatcher(); err != nil {
		return nil, err
	}

	if err := filepath.Walk(dir, ret.addDirWalking); err != nil {
		log.Errorf("error walking directory '%s': %v", dir, err)
		ret.watcher.Close()
		return nil, err
	}

	return ret, nil
}

// NewFileWatcher creates a watcher for a single file. The containing directory
// is watched, since editors and emulators commonly replace files instead of
// writing them in place.
func NewFileWatcher(file string) (*DirWatcher, error) {

	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, err
	}

	ret := &DirWatcher{
		filter: func(path string) bool { return path == abs },
		done:   make(chan bool),
	}

	if ret.watcher, err = fsnotify.NewWatcher(); err != nil {
		return nil, err
	}

	if err := ret.watcher.Add(filepath.Dir(abs)); err != nil {
		ret.watcher.Close()
		return nil, err
	}

	return ret, nil
}

//
type DirWatcher struct {
	watcher *fsnotify.Watcher
	filter  Filter
	done    chan bool
	//
	mutex   sync.Mutex
	running bool
}

/*
	Start starts this watcher. Whenever there is a change to an accepted path,
	the handler function will be called.

	Additionally, a timer is set to expire after backoff time. If there were no
	further changes by the time the timer expires, the flush function will be
	called, if set. Otherwise the timer is set again. Handler and flush are
	always called from the same go routine, so clients do not have to be
	thread safe.
*/
func (dw *DirWatcher) Start(backoff time.Duration,
	handler func(fsnotify.Event) error, flush func() error) error {

	dw.mutex.Lock()
	defer dw.mutex.Unlock()

	if dw.watcher == nil {
		return fmt.Errorf("directory watcher not initialized or stopped")
	}

	if dw.running {
		return fmt.Errorf("directory watcher already started")
	}

	dw.running = true
	events := dw.watcher.Events
	errors := dw.watcher.Errors

	go func() {

		defer close(dw.done)

		var timer <-chan time.Time
		pending := false

		for {
			select {

			case evt, ok := <-events:

				if !ok {
					log.Debug("directory watcher routine exiting")
					return
				}

				dw.handleEvent(evt)
				if dw.filter != nil && !dw.filter(evt.Name) {
					continue
				}

				if err := handler(evt); err != nil {
					log.Errorf("error in watch event handler: %v", err)
				}
				pending = true
				timer = time.After(backoff)

			case err, ok := <-errors:
				if ok {
					log.Errorf("directory watcher error: %v", err)
				}

			case <-timer:
				if pending && flush != nil {
					if err := flush(); err != nil {
						log.Errorf("error flushing: %v", err)
					}
				}
				pending = false
			}
		}
	}()

	return nil
}

/*
	Stop signals this watcher to stop, and waits until it has stopped. A
	stopped watcher cannot be started again.
*/
func (dw *DirWatcher) Stop() {

	dw.mutex.Lock()
	defer dw.mutex.Unlock()

	if dw.watcher == nil {
		return
	}

	log.Info("closing directory watcher")
	if err := dw.watcher.Close(); err != nil {
		log.Errorf("could not close file watcher: %v", err)
	}

	if dw.running {
		<-dw.done
		dw.running = false
	}
	dw.watcher = nil
}

//
func (dw *DirWatcher) handleEvent(evt fsnotify.Event) {
	log.WithFields(
		log.Fields{"path": evt.Name, "op": evt.Op}).Trace("handling event")
	if evt.Op&fsnotify.Create != 0 {
		if info, err := os.Lstat(evt.Name); err == nil && info.IsDir() {
			dw.addDir(evt.Name)
		}
	}
}

//
func (dw *DirWatcher) addDir(path string) error {
	if err := dw.watcher.Add(path); err != nil {
		log.Errorf("error adding watch for directory '%s': %v", path, err)
		return err
	}
	log.WithField("path", path).Debug("starting directory watch")
	return nil
}

//
func (dw *DirWatcher) addDirWalking(
	path string, info os.FileInfo, err error) error {
	if err != nil {
		return err
	}
	if info.IsDir() {
		return dw.addDir(path)
	}
	return nil
}
