// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package doc

import (
	"embed"

	"gopkg.in/yaml.v3"
)

// FS embeds the Open API description served under /doc.
//
//go:embed stakepool.yaml
var FS embed.FS

// version is sniffed from the yaml at startup.
var version string

// Version reports the Open API document version.
func Version() string {
	return version
}

func init() {
	content, err := FS.ReadFile("stakepool.yaml")
	if err != nil {
		panic(err)
	}

	var oai struct {
		Info struct {
			Version string
		}
	}
	if err := yaml.Unmarshal(content, &oai); err != nil {
		panic(err)
	}
	version = oai.Info.Version
}
