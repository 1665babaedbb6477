package main

import (
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/Cathrach/roam-tools/roam"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// convert runs one full conversion of the input file and returns the LaTeX
// text. The configuration is resolved from scratch on every call so that
// watch mode picks up config file and front matter changes.
func convert(c *cli.Context, inputFileName string, sugar *zap.SugaredLogger) (string, error) {
	doc, err := roam.NewDocumentFromFile(inputFileName, roam.DefaultConfig(), sugar)
	if err != nil {
		return "", err
	}

	// The command line has the last word on the options
	if err := applyFlags(c, &doc.Config); err != nil {
		return "", err
	}

	return doc.ToLaTeX(), nil
}

// applyFlags overrides the configuration resolved from the config file and
// the front matter. Flags win only when given explicitly.
func applyFlags(c *cli.Context, cfg *roam.Config) error {
	if c.IsSet("indent") {
		cfg.IndentSize = c.Int("indent")
	}
	if c.IsSet("ignore") {
		cfg.Ignore = roam.SplitNames(c.String("ignore"))
	}
	if c.IsSet("preamble") {
		text, err := os.ReadFile(c.String("preamble"))
		if err != nil {
			return err
		}
		cfg.Preamble = string(text)
	}
	return nil
}

// processWatch checks periodically if the input file (inputFileName) has been
// modified, and if so it converts the file again and writes the result to the
// output file (outputFileName)
func processWatch(c *cli.Context, inputFileName string, outputFileName string, sugar *zap.SugaredLogger) error {

	var old_timestamp time.Time
	var current_timestamp time.Time

	// Loop forever
	for {

		// Get the modified timestamp of the input file
		info, err := os.Stat(inputFileName)
		if err != nil {
			return err
		}
		current_timestamp = info.ModTime()

		// If current modified timestamp is newer than the previous timestamp, process the file
		if old_timestamp.Before(current_timestamp) {
			old_timestamp = current_timestamp
			fmt.Println("************Processing*************")
			latex, err := convert(c, inputFileName, sugar)
			if err != nil {
				return err
			}
			err = os.WriteFile(outputFileName, []byte(latex), 0664)
			if err != nil {
				return err
			}
		}

		// Check again in one second
		time.Sleep(1 * time.Second)

	}
}

// process is the main entry point of the program
func process(c *cli.Context) error {

	// Output file name command line parameter
	outputFileName := c.String("output")

	// Dry run
	dryrun := c.Bool("dryrun")

	debug := c.Bool("debug")

	var z *zap.Logger
	var err error

	// Setup the logging system
	if debug {
		z, err = zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
	} else {
		z, err = zap.NewProduction()
		if err != nil {
			panic(err)
		}
	}

	sugar := z.Sugar()
	defer sugar.Sync()

	// Get the input file name
	if !c.Args().Present() {
		return cli.ShowAppHelp(c)
	}
	inputFileName := c.Args().First()

	// Generate the output file name replacing the input extension with .tex
	if len(outputFileName) == 0 {
		ext := path.Ext(inputFileName)
		outputFileName = strings.TrimSuffix(inputFileName, ext) + ".tex"
	}

	// Print a message
	if !dryrun {
		fmt.Printf("processing %v and generating %v\n", inputFileName, outputFileName)
	} else {
		fmt.Printf("dry run: processing %v without writing output\n", inputFileName)
	}

	// This is useful for writing in Roam with a live preview.
	// If the user specified to watch, loop forever processing the input file when modified
	if c.Bool("watch") {
		err = processWatch(c, inputFileName, outputFileName, sugar)
		return err
	}

	latex, err := convert(c, inputFileName, sugar)
	if err != nil {
		return err
	}

	// Do nothing if flag dryrun was specified
	if dryrun {
		return nil
	}

	// Write the LaTeX document to the output file
	err = os.WriteFile(outputFileName, []byte(latex), 0664)
	if err != nil {
		return err
	}

	return nil
}

func main() {

	app := &cli.App{
		Name:     "roam2tex",
		Version:  "v0.03",
		Compiled: time.Now(),
		Authors: []*cli.Author{
			{
				Name: "Serina Hu",
			},
		},
		Usage:     "convert a Roam markdown export to a LaTeX document",
		UsageText: "roam2tex [options] INPUT_FILE",
		Action:    process,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write LaTeX to `FILE` (default is input file name with extension .tex)",
			},
			&cli.StringFlag{
				Name:    "preamble",
				Aliases: []string{"p"},
				Usage:   "read the document preamble from `FILE`",
			},
			&cli.IntFlag{
				Name:    "indent",
				Aliases: []string{"i"},
				Value:   roam.DefaultIndentSize,
				Usage:   "number of spaces of one indentation level",
			},
			&cli.StringFlag{
				Name:  "ignore",
				Usage: "comma-separated property `NAMES` whose lines are dropped",
			},
			&cli.BoolFlag{
				Name:    "dryrun",
				Aliases: []string{"n"},
				Usage:   "do not generate output file, just process input file",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "run in debug mode",
			},
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "watch the file for changes",
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		panic(err)
	}

}
