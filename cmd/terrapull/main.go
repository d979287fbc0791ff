package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Exit codes
const (
	ExitSuccess        = 0
	ExitGeneralError   = 1
	ExitInvalidArgs    = 2
	ExitStorageError   = 3
	ExitDownloadFailed = 4
	ExitCheckFailed    = 5
	ExitAborted        = 6
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return ExitInvalidArgs
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "download":
		return runDownload(cmdArgs)
	case "check":
		return runCheck(cmdArgs)
	case "help", "-h", "--help":
		printUsage()
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		return ExitInvalidArgs
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: terrapull <command> [options] <min_lon,min_lat,max_lon,max_lat>

Downloads Terrarium PNG terrain tiles from AWS Open Data for a bounding box
and zoom range, and checks existing tile sets for completeness and integrity.

Commands:
  download  Download terrain tiles for a bounding box
  check     Check existing tiles for completeness and basic integrity

If the bounding box starts with a hyphen (negative longitude), place '--'
before it so it is not parsed as an option:

  terrapull download -zoom 10,14 -- -118.67,33.70,-118.15,34.34

Run 'terrapull <command> -h' for command-specific help.`)
}

// bucketURL turns an output directory into a gocloud bucket URL. Values that
// already carry a scheme (s3://, gs://, mem://) pass through so tile sets in
// object storage work too.
func bucketURL(dir string, createDir bool) (string, error) {
	if strings.Contains(dir, "://") {
		return dir, nil
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}

	u := "file://" + filepath.ToSlash(abs) + "?metadata=skip"
	if createDir {
		u += "&create_dir=true"
	}
	return u, nil
}

// confirm prompts on stderr and reads a y/n answer from stdin.
func confirm(prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N]: ", prompt)

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
