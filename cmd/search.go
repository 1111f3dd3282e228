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
	"strings"
	"time"

	"github.com/bgallie/enigma/cryptors/machine"
	"github.com/bgallie/enigma/cryptors/search"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	crib    string
	workers int
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search --crib TEXT [ciphertext...]",
	Short: "Find the starting positions of a message from a crib",
	Long: `Search tries every starting position of the configured rotors, rings and
plugboard against the cipher text and prints each one whose decryption begins
with the crib (the known start of the plaintext).`,
	Run: func(cmd *cobra.Command, args []string) {
		searchPositions(args)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVarP(&crib, "crib", "c", "", "known plaintext at the start of the message")
	searchCmd.Flags().IntVarP(&workers, "workers", "j", 0, "number of parallel workers (default is the number of CPUs)")
	cobra.CheckErr(searchCmd.MarkFlagRequired("crib"))
}

func searchPositions(args []string) {
	m, err := buildMachine()
	cobra.CheckErr(err)
	fin, fout := getInputAndOutputFiles()
	defer fout.Close()
	ciphertext, err := io.ReadAll(getMessage(args, fin))
	checkError(err)

	begin := time.Now()
	matches := search.Positions(m, string(ciphertext), crib, workers)
	log.Debug().Int("matches", len(matches)).Dur("elapsed", time.Since(begin)).Msg("search finished")
	if len(matches) == 0 {
		log.Warn().Str("crib", crib).Msg("no starting position matches the crib")
		return
	}

	for _, match := range matches {
		_, err := fmt.Fprintf(fout, "%s: %s\n", machine.FormatTriple(match.Positions[:]),
			strings.TrimRight(match.Plaintext, "\r\n"))
		checkError(err)
	}
}
