/*
Copyright © 2021 Billy G. Allie <bill.allie@defiant.mug.org>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/bgallie/enigma/cryptors/catalog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var dumpYAML bool

// catalogCmd represents the catalog command
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the available rotors and reflectors",
	Long: `List the rotors and reflectors of the active catalog.  With --yaml the
catalog is written in the format accepted by --catalog, which is a convenient
starting point for a custom catalog.`,
	Run: func(cmd *cobra.Command, args []string) {
		cat, err := loadCatalog()
		cobra.CheckErr(err)
		if dumpYAML {
			cobra.CheckErr(writeCatalogYAML(os.Stdout, cat))
		} else {
			cobra.CheckErr(writeCatalog(os.Stdout, cat))
		}
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.Flags().BoolVar(&dumpYAML, "yaml", false, "write the catalog as YAML")
}

func writeCatalog(w io.Writer, cat *catalog.Catalog) error {
	for i, r := range cat.Rotors {
		if _, err := fmt.Fprintf(w, "rotor     %2d %-5s %s notch %s\n", i, r.Name, r.Wiring, r.Notch); err != nil {
			return err
		}
	}
	for i, r := range cat.Reflectors {
		if _, err := fmt.Fprintf(w, "reflector %2d %-5s %s\n", i, r.Name, r.Wiring); err != nil {
			return err
		}
	}
	return nil
}

func writeCatalogYAML(w io.Writer, cat *catalog.Catalog) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cat); err != nil {
		return err
	}
	return enc.Close()
}
