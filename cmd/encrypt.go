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
	"bufio"
	"io"
	"strings"
	"sync"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/machine"
	"github.com/bgallie/filters/lines"
	"github.com/bgallie/filters/pem"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const pemBlockType = "ENIGMA MESSAGE"

var (
	usePem     bool
	groupSize  int
	wg         sync.WaitGroup
	pemHeaders = []string{"Reflector", "Rotors", "Positions", "Rings", "Plugboard"}
)

// encryptCmd represents the encrypt command
var encryptCmd = &cobra.Command{
	Use:   "encrypt [text...]",
	Short: "Encrypt plaintext using the Enigma machine",
	Long: `Encrypt plaintext using the Enigma machine.
Letters are encrypted and upper cased; everything else is copied unchanged and
does not move the rotors.  The text is taken from the arguments, the input file
or, when stdin is a terminal, prompted for.`,
	Run: func(cmd *cobra.Command, args []string) {
		encrypt(args)
	},
}

func init() {
	rootCmd.AddCommand(encryptCmd)
	encryptCmd.Flags().BoolVarP(&usePem, "usePem", "p", false, "use PEM encoding, recording the machine settings in the headers.")
	encryptCmd.Flags().IntVarP(&groupSize, "groups", "g", 0, "drop everything but letters and write the cipher text in groups of this size")
	encryptCmd.Flags().BoolVar(&resume, "resume", false, `start where the last session with the same settings stopped
and save the final rotor positions for the next session`)
}

func encrypt(args []string) {
	m, err := prepareMachine(resume)
	cobra.CheckErr(err)
	start := m.Positions()
	fin, fout := getInputAndOutputFiles()
	defer fout.Close()

	var encIn io.Reader = cipherHelper(getMessage(args, fin), m)
	if groupSize > 0 {
		encIn = groupLines(encIn, groupSize)
	}

	if usePem {
		blck := pem.Block{Type: pemBlockType, Headers: settingsHeaders(m.Settings(), start[:])}
		_, err = io.Copy(fout, pem.ToPem(bufio.NewReader(encIn), blck))
	} else {
		_, err = io.Copy(fout, encIn)
	}
	checkError(err)
	wg.Wait()

	p := m.Positions()
	log.Debug().Str("start", machine.FormatTriple(start[:])).Str("end", machine.FormatTriple(p[:])).Msg("encryption finished")
	if resume {
		cobra.CheckErr(saveSession(m))
	}
}

// settingsHeaders describes the settings of a message, with the rotors
// starting at start, as PEM headers.
func settingsHeaders(s machine.Settings, start []int) map[string]string {
	return map[string]string{
		"Reflector": s.Reflector,
		"Rotors":    strings.Join(s.Rotors, " "),
		"Positions": machine.FormatTriple(start),
		"Rings":     machine.FormatTriple(s.Rings),
		"Plugboard": strings.Join(s.Plugboard, " "),
	}
}

// cipherHelper runs everything read from rdr through the machine.  The
// result can be read using the returned PipeReader.
func cipherHelper(rdr io.Reader, m *machine.Machine) *io.PipeReader {
	rRdr, rWrtr := io.Pipe()
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := io.Copy(rWrtr, m.NewReader(rdr))
		rWrtr.CloseWithError(err)
	}()
	return rRdr
}

// groupsPerLine is the number of letter groups written on each line.
const groupsPerLine = 5

// groupLines writes the letters read from rdr in groups of size letters,
// groupsPerLine groups to a line.
func groupLines(rdr io.Reader, size int) io.Reader {
	lines.LineSize = groupsPerLine*(size+1) - 1
	return lines.SplitToLines(groupHelper(rdr, size))
}

// groupHelper keeps only the letters read from rdr and separates them into
// groups of size letters.  No separator follows the last group of a line, so
// every line is exactly groupsPerLine*(size+1)-1 bytes long.
func groupHelper(rdr io.Reader, size int) *io.PipeReader {
	rRdr, rWrtr := io.Pipe()
	wg.Add(1)
	go func() {
		defer wg.Done()
		w := bufio.NewWriter(rWrtr)
		bRdr := bufio.NewReader(rdr)
		cnt := 0
		var err error
		for {
			var b byte
			b, err = bRdr.ReadByte()
			if err != nil {
				break
			}
			if !cryptors.IsLetter(b) {
				continue
			}
			if cnt > 0 && cnt%size == 0 && cnt%(groupsPerLine*size) != 0 {
				w.WriteByte(' ')
			}
			w.WriteByte(b)
			cnt++
		}
		if err == io.EOF {
			err = w.Flush()
		}
		rWrtr.CloseWithError(err)
	}()
	return rRdr
}
