package cli

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// rcFiles lists the configuration files consulted before the real command
// line, in the order their arguments should be applied: a user's own
// ~/.mlerc first, then the system-wide default (spec.md §6 "RC files").
// A later argument always wins over an earlier one since Parse applies
// them in sequence, so for single-valued options an entry in /etc/mlerc
// takes precedence over the same option in ~/.mlerc, and the real command
// line overrides both.
func rcFiles(home string) []string {
	return []string{
		filepath.Join(home, ".mlerc"),
		filepath.Join("/etc", "mlerc"),
	}
}

// LoadRC reads the RC files that exist (missing files are silently
// skipped) and returns the flattened argv tokens they contribute, in file
// order. Each line is one logical option entry (e.g. "-t 8") and is split
// on whitespace into the individual tokens Parse expects to see.
func LoadRC(home string) ([]string, error) {
	var out []string
	for _, path := range rcFiles(home) {
		tokens, err := readRCFile(path)
		if err != nil {
			return nil, err
		}
		out = append(out, tokens...)
	}
	return out, nil
}

func readRCFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "cli: reading %s", path)
	}
	defer f.Close()

	var tokens []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tokens = append(tokens, strings.Fields(line)...)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "cli: reading %s", path)
	}
	return tokens, nil
}

// BuildArgv joins the RC-file arguments with the real command-line
// arguments (os.Args[1:]) into one synthetic argv Parse can scan, with
// argv[0] set to the program name as Parse expects to skip it.
func BuildArgv(rcArgs []string, realArgs []string) []string {
	argv := make([]string, 0, 1+len(rcArgs)+len(realArgs))
	argv = append(argv, "mle")
	argv = append(argv, rcArgs...)
	argv = append(argv, realArgs...)
	return argv
}
