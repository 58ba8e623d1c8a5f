package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mukeshjc/mvcc-isolation/v2/mvcc"
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "start an interactive session against a fresh database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := newDatabase(cfg)
			if err != nil {
				return err
			}
			return runRepl(cmd, db, cfg.Prompt)
		},
	}
}

// runRepl reads commands line by line and executes them against a
// single Connection, printing either the success message or the error.
func runRepl(cmd *cobra.Command, db *mvcc.Database, prompt string) error {
	conn := db.NewConnection()
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Fprintln(out, "mvcc-isolation shell. Commands: begin, commit, abort, get <k>, set <k> <v>, delete <k>, .history <k>, quit")
	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}
		if strings.HasPrefix(line, ".history") {
			printHistory(out, db, line)
			continue
		}

		res, err := conn.Exec(line)
		if err != nil {
			fmt.Fprintln(out, "error:", err)
			continue
		}
		fmt.Fprintln(out, res)
	}
}

func printHistory(out io.Writer, db *mvcc.Database, line string) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		fmt.Fprintln(out, "usage: .history <key>")
		return
	}
	for _, v := range db.DumpKey(fields[1]) {
		fmt.Fprintf(out, "  data=%q tx_start=%d tx_end=%d\n", v.Data, v.TxStartId, v.TxEndId)
	}
}
