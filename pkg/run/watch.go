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
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/xelalexv/gen3save/pkg/control"
	"github.com/xelalexv/gen3save/pkg/rom"
	"github.com/xelalexv/gen3save/pkg/save"
	"github.com/xelalexv/gen3save/pkg/util"
)

//
func NewWatch() *Watch {

	w := &Watch{fs: afero.NewOsFs()}
	w.Runner = *NewRunner(
		"watch -i|--input {file} [-t|--tables {file}] [-b|--backoff {duration}]",
		"watch a save file and show its content whenever it changes",
		`
Use the watch command to keep an eye on the save file of a running emulator.
The save is decoded and shown initially, and again each time the file has
been written. Stop with Ctrl-C.`,
		"", runnerHelpEpilogue, w.Run)

	w.AddBaseSettings()
	w.AddSetting(&w.Input, "input", "i", "", nil, "save input file", true)
	w.AddSetting(&w.Tables, "tables", "t", "", nil,
		"YAML file with ROM lookup tables", false)
	w.AddSetting(&w.Backoff, "backoff", "b", "", 500*time.Millisecond,
		"time to wait for writes to settle before decoding", false)

	return w
}

//
type Watch struct {
	Runner
	//
	Input   string
	Tables  string
	Backoff time.Duration
	//
	fs     afero.Fs
	tables rom.Lookup
}

//
func (w *Watch) Run() error {

	if err := w.ParseSettings(); err != nil {
		return err
	}

	if !fileExists(w.Input) {
		return fmt.Errorf("save file '%s' does not exist", w.Input)
	}

	var err error
	if w.tables, err = loadTables(w.fs, w.Tables); err != nil {
		return err
	}

	w.show()

	watcher, err := util.NewFileWatcher(w.Input)
	if err != nil {
		return err
	}
	defer watcher.Stop()

	if err := watcher.Start(w.Backoff,
		func(evt fsnotify.Event) error {
			log.WithField("op", evt.Op).Debug("save file changed")
			return nil
		},
		func() error {
			w.show()
			return nil
		}); err != nil {
		return err
	}

	waitForSignal()
	return nil
}

// show decodes and prints the save; failures are reported but do not end the
// watch, the file may be in the middle of being written
func (w *Watch) show() {

	diag := &save.Diagnostics{}
	sv, err := decodeFile(w.fs, w.Input, false, diag)
	if err != nil {
		log.Errorf("cannot decode save: %v", err)
		return
	}

	fmt.Fprintf(w.out(), "\n--- %s\n", time.Now().Format(time.RFC3339))
	control.NewReport(
		sv, rom.NewNames(w.tables, control.MissReporter(diag)), diag,
	).Write(w.out())
}

//
func waitForSignal() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	sig := <-sigs
	log.WithField("signal", sig).Info("stopping")
}
