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

package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/xelalexv/gen3save/pkg/run"
)

//
func main() {

	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})

	root := &cobra.Command{
		Use:   "gen3save",
		Short: "decoder for Generation III cartridge saves",
		Long: `
gen3save decodes the battery backed save memory of Generation III handheld
game cartridges, as dumped by cartridge readers or written by emulators.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		run.NewShow().Command(),
		run.NewDump().Command(),
		run.NewWatch().Command(),
		run.NewServe().Command(),
		run.NewSearch().Command(),
		run.NewVersion().Command(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
