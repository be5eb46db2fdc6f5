package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/mymemory/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   path to the SQLite database
//	-l string   log level
//	-f string   fallback profile image file
//	-m int      maximum profile image width/height in pixels
//
// Only the flags above are kept from os.Args (flagx.FilterArgs), so the
// -c/-config flag read by parseJson does not trip this parser.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-l", "-f", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local database")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.FallbackImage, "f", cfg.FallbackImage, "image shown when no profile image is stored")
	fs.IntVar(&cfg.MaxProfileDimension, "m", cfg.MaxProfileDimension, "maximum profile image side in pixels (0 = no scaling)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
