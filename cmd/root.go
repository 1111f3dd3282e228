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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bgallie/enigma/cryptors/catalog"
	"github.com/bgallie/enigma/cryptors/machine"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var (
	cfgFile        string
	inputFileName  string
	outputFileName string
	resume         bool
	GitCommit      string = "not set"
	GitBranch      string = "not set"
	GitState       string = "not set"
	GitSummary     string = "not set"
	BuildDate      string = "not set"
	Version        string = "dev"
)

const (
	enigmaConfigName = ".enigma"
	sessionsKey      = "sessions"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "enigma",
	Short:   "An Enigma cipher machine",
	Long:    `enigma encrypts and decrypts text with a simulated three rotor Enigma machine.`,
	Version: Version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig)
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.enigma.yaml)")
	flags.String("catalog", "", "YAML or TOML file with the rotor and reflector wirings (default is the built in Enigma I set)")
	flags.StringP("reflector", "u", catalog.DefaultReflector, "reflector (Umkehrwalze) to use")
	flags.StringP("rotors", "w", "I II III", "rotors to use, left to right, by name or catalog number")
	flags.StringP("positions", "s", "AAA", "starting positions (Grundstellung), e.g. ADU or 0,3,20")
	flags.StringP("rings", "r", "AAA", "ring settings (Ringstellung), e.g. BBB or 01-01-01")
	flags.StringP("plugboard", "x", "", "plugboard pairs (Steckerverbindungen), e.g. \"AB CD EF\"")
	flags.BoolP("verbose", "v", false, "log machine settings and progress to stderr")
	flags.StringVarP(&inputFileName, "inputFile", "i", "-", "Name of the file to encrypt/decrypt.")
	flags.StringVarP(&outputFileName, "outputFile", "o", "", "Name of the file containing the encrypted/decrypted text.")
	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} {{.Version}} %s (%s/%s %s) built %s\n",
		GitSummary, GitBranch, GitCommit, GitState, BuildDate))
	for _, name := range []string{"catalog", "reflector", "rotors", "positions", "rings", "plugboard", "verbose"} {
		cobra.CheckErr(viper.BindPFlag(name, flags.Lookup(name)))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".enigma" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(enigmaConfigName)
	}

	viper.SetEnvPrefix("ENIGMA")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	err := viper.ReadInConfig()
	initLogger()
	if err == nil {
		log.Debug().Str("path", viper.ConfigFileUsed()).Msg("using config file")
	}
}

// initLogger sends human readable logs to stderr; stdout carries the
// cipher text.
func initLogger() {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	level := zerolog.WarnLevel
	if viper.GetBool("verbose") {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(output).Level(level).With().Timestamp().Str("app", "enigma").Logger()
}

// loadCatalog returns the catalog named by the "catalog" setting, or the
// historical catalog.
func loadCatalog() (*catalog.Catalog, error) {
	path := viper.GetString("catalog")
	if path == "" {
		return catalog.Historical(), nil
	}
	cat, err := catalog.Load(path)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("path", path).Int("rotors", len(cat.Rotors)).Msg("loaded catalog")
	return cat, nil
}

// currentSettings collects the machine settings from flags, environment and
// config file.
func currentSettings() (machine.Settings, error) {
	return machine.ParseSettings(
		viper.GetString("reflector"),
		viper.GetString("rotors"),
		viper.GetString("positions"),
		viper.GetString("rings"),
		viper.GetString("plugboard"))
}

func buildMachine() (*machine.Machine, error) {
	cat, err := loadCatalog()
	if err != nil {
		return nil, err
	}
	s, err := currentSettings()
	if err != nil {
		return nil, err
	}
	m, err := machine.New(cat, s)
	if err != nil {
		return nil, err
	}
	log.Debug().Stringer("machine", m).Msg("machine ready")
	return m, nil
}

// prepareMachine builds the configured machine and, if resumeSaved is set,
// moves it to where the last session with the same settings stopped.
func prepareMachine(resumeSaved bool) (*machine.Machine, error) {
	m, err := buildMachine()
	if err != nil {
		return nil, err
	}
	if resumeSaved {
		if err := resumeSession(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func sessionKey(m *machine.Machine) string {
	return fmt.Sprintf("%s.%s", sessionsKey, m.Settings().Key())
}

// resumeSession moves the rotors of m to where the previous session with the
// same settings stopped.
func resumeSession(m *machine.Machine) error {
	key := sessionKey(m)
	if !viper.IsSet(key) {
		log.Debug().Str("key", key).Msg("no saved session, using the configured positions")
		return nil
	}
	saved := viper.GetString(key)
	p, err := machine.ParseTriple(saved)
	if err != nil {
		return fmt.Errorf("saved session %s: %w", key, err)
	}
	var pos [3]int
	copy(pos[:], p)
	if err := m.SetPositions(pos); err != nil {
		return err
	}
	log.Debug().Str("key", key).Str("positions", saved).Msg("resumed session")
	return nil
}

// saveSession records the final positions of m so the next session can
// continue from them.
func saveSession(m *machine.Machine) error {
	p := m.Positions()
	viper.Set(sessionKey(m), machine.FormatTriple(p[:]))
	if viper.ConfigFileUsed() != "" {
		return viper.WriteConfig()
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	return viper.WriteConfigAs(filepath.Join(home, enigmaConfigName+".yaml"))
}

/*
	getInputAndOutputFiles will return the input and output files to use while
	encrypting/decrypting data.  If input and/or output files names were given,
	then those files will be opened.  Otherwise stdin and stdout are used.
*/
func getInputAndOutputFiles() (*os.File, *os.File) {
	var fin *os.File
	var err error

	if len(inputFileName) > 0 && inputFileName != "-" {
		fin, err = os.Open(inputFileName)
		cobra.CheckErr(err)
	} else {
		fin = os.Stdin
	}

	var fout *os.File

	if len(outputFileName) > 0 && outputFileName != "-" {
		fout, err = os.Create(outputFileName)
		cobra.CheckErr(err)
	} else {
		fout = os.Stdout
	}

	return fin, fout
}

// getMessage returns the text to process from either:
// 1. Arguments from the entered command line
// 2. A line typed at the terminal
// 3. The input file (or stdin when it is not a terminal)
func getMessage(args []string, fin *os.File) io.Reader {
	if len(args) > 0 {
		return strings.NewReader(strings.Join(args, " ") + "\n")
	}
	if fin == os.Stdin && term.IsTerminal(int(os.Stdin.Fd())) {
		oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
		cobra.CheckErr(err)
		msg, err := readMessage(os.Stdin, os.Stderr)
		cobra.CheckErr(term.Restore(int(os.Stdin.Fd()), oldState))
		cobra.CheckErr(err)
		return strings.NewReader(msg + "\n")
	}
	return bufio.NewReader(fin)
}

// readMessage prompts on out and reads one line from in, echoing what is
// typed.  in must already be in raw mode when it is a terminal.
func readMessage(in io.Reader, out io.Writer) (string, error) {
	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{in, out}, "Enter the message: ")
	return t.ReadLine()
}

// checkError checks for error that are not io.EOF and io.ErrUnexpectedEOF and logs them.
func checkError(e error) {
	if e != nil && e != io.EOF && e != io.ErrUnexpectedEOF {
		log.Error().Err(e).Msg("enigma failed")
		cobra.CheckErr(e)
	}
}
