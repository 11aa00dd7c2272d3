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
	"io"
	"strings"

	"github.com/xelalexv/gen3save/pkg/util"
)

//
func NewVersion() *Version {
	v := &Version{}
	v.Runner = *NewRunner(
		"version [-a|--address {address}]",
		"get version info, optionally also of a running API server", "", "",
		"", v.Run)
	v.AddBaseSettings()
	v.AddAddressSetting()
	return v
}

//
type Version struct {
	Runner
}

//
func (v *Version) Run() error {

	if err := v.ParseSettings(); err != nil {
		return err
	}

	if !v.IsSet("address") {
		v.print("")
		return nil
	}

	resp, err := v.apiCall("GET", "/version", false, nil)
	if err != nil {
		v.print("server:     not reachable\n")
		return nil
	}
	defer resp.Close()

	buf := new(strings.Builder)
	if _, err = io.Copy(buf, resp); err != nil {
		return err
	}

	v.print(buf.String())
	return nil
}

//
func (v *Version) print(remote string) {
	fmt.Fprintf(v.out(), `
   ____            _____ ____
  / ___| ___ _ __ |___ // ___|  __ ___   _____
 | |  _ / _ \ '_ \  |_ \\___ \ / _' \ \ / / _ \
 | |_| |  __/ | | |___) |___) | (_| |\ V /  __/
  \____|\___|_| |_|____/|____/ \__,_| \_/ \___|

gen3save:   %s
`, util.Gen3SaveVersion)
	if remote != "" {
		fmt.Fprintf(v.out(), "%s", remote)
	}
	fmt.Fprintln(v.out())
}
