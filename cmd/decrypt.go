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

	"github.com/bgallie/filters/pem"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// decryptCmd represents the decrypt command
var decryptCmd = &cobra.Command{
	Use:   "decrypt [text...]",
	Short: "Decrypt an Enigma message.",
	Long: `Decrypt a message encrypted by the Enigma machine.
A PEM encoded message carries its own machine settings, which take the place of
the configured ones.`,
	Run: func(cmd *cobra.Command, args []string) {
		decrypt(args)
	},
}

func init() {
	rootCmd.AddCommand(decryptCmd)
	decryptCmd.Flags().BoolVar(&resume, "resume", false, `start where the last session with the same settings stopped
and save the final rotor positions for the next session`)
}

func decrypt(args []string) {
	fin, fout := getInputAndOutputFiles()
	defer fout.Close()
	bRdr := bufio.NewReader(getMessage(args, fin))
	b, err := bRdr.Peek(5)
	checkError(err)

	var src io.Reader = bRdr
	fromHeaders := false
	if string(b) == "-----" {
		pRdr, blck := pem.FromPem(bRdr)
		if blck.Type != pemBlockType {
			log.Warn().Str("type", blck.Type).Msg("unexpected PEM block type")
		}
		applyHeaders(blck.Headers)
		_, fromHeaders = blck.Headers["Positions"]
		src = pRdr
	}
	if resume && fromHeaders {
		log.Warn().Msg("the message header sets the start positions, the saved session is not used")
	}

	m, err := prepareMachine(resume && !fromHeaders)
	cobra.CheckErr(err)
	_, err = io.Copy(fout, cipherHelper(src, m))
	checkError(err)
	wg.Wait()

	if resume {
		cobra.CheckErr(saveSession(m))
	}
}

// applyHeaders overrides the configured machine settings with those recorded
// in a PEM message.
func applyHeaders(headers map[string]string) {
	for _, h := range pemHeaders {
		v, ok := headers[h]
		if !ok {
			continue
		}
		viper.Set(strings.ToLower(h), v)
		log.Debug().Str(strings.ToLower(h), v).Msg("setting from message header")
	}
}
