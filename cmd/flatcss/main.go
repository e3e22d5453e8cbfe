// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/mdhender/flatcss"
	"github.com/mdhender/flatcss/pipelines/stages"
	store "github.com/mdhender/flatcss/stores/sqlite"
	"github.com/spf13/cobra"
)

func main() {
	addFlags := func(cmd *cobra.Command) error {
		cmd.PersistentFlags().Bool("debug", false, "log debugging information")
		cmd.PersistentFlags().Bool("log-with-default-flags", false, "log with default flags")
		cmd.PersistentFlags().Bool("log-with-shortfile", false, "log with short file name")
		cmd.PersistentFlags().Bool("log-with-timestamp", false, "log with timestamp")
		cmd.PersistentFlags().Bool("quiet", false, "log less information")
		cmd.PersistentFlags().Bool("show-version", false, "show version")
		cmd.PersistentFlags().Bool("verbose", false, "log more information")
		return nil
	}
	var cmdRoot = &cobra.Command{
		Use:   "flatcss",
		Short: "Nested style sheet compiler",
		Long:  `Compile nested .scss style sheets into flat CSS`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logWithDefaultFlags, _ := cmd.Flags().GetBool("log-with-default-flags")
			logWithShortFileName, _ := cmd.Flags().GetBool("log-with-shortfile")
			logWithTimestamp, _ := cmd.Flags().GetBool("log-with-timestamp")
			logFlags := 0
			if logWithShortFileName {
				logFlags |= log.Lshortfile
			}
			if logWithTimestamp {
				logFlags |= log.Ltime
			}
			if logWithDefaultFlags {
				logFlags = log.LstdFlags
			}
			log.SetFlags(logFlags)

			if showVersion, _ := cmd.Flags().GetBool("show-version"); showVersion {
				log.Printf("flatcss: version %q\n", flatcss.Version().Core())
			}

			return nil
		},
	}
	cmdRoot.AddCommand(cmdCompile())
	cmdRoot.AddCommand(cmdTokens())
	cmdRoot.AddCommand(cmdParse())
	cmdRoot.AddCommand(cmdHistory())
	cmdRoot.AddCommand(cmdInitDB())
	cmdRoot.AddCommand(cmdVersion())
	if err := addFlags(cmdRoot); err != nil {
		log.Fatal(err)
	}

	if err := cmdRoot.Execute(); err != nil {
		os.Exit(1)
	}
}

// verbosity returns the quiet, verbose, and debug persistent flags.
func verbosity(cmd *cobra.Command) (quiet, verbose, debug bool) {
	quiet, _ = cmd.Flags().GetBool("quiet")
	verbose, _ = cmd.Flags().GetBool("verbose")
	debug, _ = cmd.Flags().GetBool("debug")
	if quiet {
		verbose = false
	}
	return quiet, verbose, debug
}

// debugLogger returns a logger for the lexer and parser traces,
// or nil when debugging is off.
func debugLogger(debug bool) *slog.Logger {
	if !debug {
		return nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func cmdCompile() *cobra.Command {
	var dbPath string
	var outputDir string
	childrenFirst := false
	force := false
	skipEmpty := false
	toStdout := false
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().BoolVar(&childrenFirst, "children-first", childrenFirst, "emit nested rules before their parent")
		cmd.Flags().StringVar(&dbPath, "db", dbPath, "record compiles in the ledger database")
		cmd.Flags().BoolVar(&force, "force", force, "compile even if the ledger shows the output is current")
		cmd.Flags().StringVarP(&outputDir, "output-dir", "o", outputDir, "write outputs to this directory")
		cmd.Flags().BoolVar(&skipEmpty, "skip-empty", skipEmpty, "do not emit rules for blocks without declarations")
		cmd.Flags().BoolVar(&toStdout, "stdout", toStdout, "write outputs to standard output")
		return nil
	}
	var cmd = &cobra.Command{
		Use:          "compile <file.scss> [<file.scss>...]",
		Short:        "compile nested style sheets to flat CSS",
		SilenceUsage: true,
		Args:         cobra.MinimumNArgs(1), // require path to at least one source file
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			quiet, verbose, debug := verbosity(cmd)
			started := time.Now()

			var options []flatcss.Option
			if childrenFirst {
				options = append(options, flatcss.WithOrder(flatcss.ChildrenFirst))
			}
			if skipEmpty {
				options = append(options, flatcss.WithEmptyRules(false))
			}

			if toStdout {
				if dbPath != "" || outputDir != "" {
					return fmt.Errorf("--stdout can't be used with --db or --output-dir")
				}
				svc := stages.NewCompileService(nil, "", "", options...)
				svc.SetLogger(debugLogger(debug))
				failed := 0
				for _, input := range args {
					if err := svc.CompileTo(os.Stdout, input); err != nil {
						report(input, err)
						failed++
					}
				}
				if failed != 0 {
					return fmt.Errorf("%d of %d files failed", failed, len(args))
				}
				return nil
			}

			var svc *stages.CompileService
			if dbPath != "" {
				ledger, err := store.NewStore(ctx, dbPath)
				if err != nil {
					return err
				}
				defer ledger.Close()
				svc = stages.NewCompileService(ledger, outputDir, "", options...)
			} else {
				svc = stages.NewCompileService(nil, outputDir, "", options...)
			}
			svc.SetForce(force)
			svc.SetLogger(debugLogger(debug))

			br, err := svc.CompileBatch(ctx, args)
			if err != nil {
				return err
			}
			for _, fr := range br.Files {
				switch {
				case fr.Err != nil:
					report(fr.Path, fr.Err)
				case fr.Result.Skipped:
					if verbose {
						log.Printf("%s: unchanged, skipped\n", fr.Path)
					}
				case !quiet:
					log.Printf("%s: wrote %d rules (%d bytes) to %s\n", fr.Path, fr.Result.Rules, fr.Result.Bytes, fr.Result.OutputPath)
				}
			}
			if verbose {
				log.Printf("compiled %d files: %d ok, %d skipped, %d failed in %v\n", len(br.Files), br.Ok, br.Skipped, br.Failed, time.Since(started))
			}
			if br.Failed != 0 {
				return fmt.Errorf("%d of %d files failed", br.Failed, len(br.Files))
			}
			return nil
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}

// report prints a compile error. Lexer errors get the source line and a caret.
func report(path string, err error) {
	code := stages.ErrorCode(err)
	if code != stages.ErrCodeLex && code != stages.ErrCodeParse {
		log.Printf("%s: %v\n", path, err)
		return
	}
	src, _ := os.ReadFile(path)
	flatcss.PrintDiagnostic(os.Stderr, flatcss.NewDiagnostic(err), path, src)
}

func cmdTokens() *cobra.Command {
	var cmd = &cobra.Command{
		Use:          "tokens <file>",
		Short:        "dump the token stream for a source file",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, debug := verbosity(cmd)
			input, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			l := flatcss.NewLexer(args[0], input, debugLogger(debug))
			for n := 1; ; n++ {
				tok, err := l.Scan()
				if err != nil {
					report(args[0], err)
					return fmt.Errorf("tokens: %w", err)
				}
				fmt.Printf("%5d %-12s %q\n", n, tok.Kind, tok.Text)
				if tok.Kind == flatcss.EndOfInput {
					return nil
				}
			}
		},
	}
	return cmd
}

func cmdParse() *cobra.Command {
	var outputFile string
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().StringVarP(&outputFile, "output", "o", outputFile, "save parse to file")
		return nil
	}
	var cmd = &cobra.Command{
		Use:          "parse <file>",
		Short:        "dump the block tree for a source file as JSON",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, debug := verbosity(cmd)
			input, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			logger := debugLogger(debug)
			tokens, err := flatcss.NewLexer(args[0], input, logger).ScanAll()
			if err != nil {
				report(args[0], err)
				return fmt.Errorf("parse: %w", err)
			}
			blocks, err := flatcss.ParseWithLogger(tokens, logger)
			if err != nil {
				report(args[0], err)
				return fmt.Errorf("parse: %w", err)
			}
			data, err := json.MarshalIndent(blocks, "", "  ")
			if err != nil {
				return fmt.Errorf("json: %w", err)
			}
			if outputFile == "" {
				fmt.Println(string(data))
			} else if err = os.WriteFile(outputFile, data, 0o644); err != nil {
				return err
			} else {
				log.Printf("%s: wrote %d bytes\n", outputFile, len(data))
			}
			return nil
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}

func cmdHistory() *cobra.Command {
	var dbPath string
	limit := 20
	showDBStats := false
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().StringVar(&dbPath, "db", dbPath, "path to the ledger database")
		cmd.Flags().IntVarP(&limit, "limit", "n", limit, "number of compiles to list (0 for all)")
		cmd.Flags().BoolVar(&showDBStats, "show-db-stats", showDBStats, "dump row counts from each table")
		return cmd.MarkFlagRequired("db")
	}
	var cmd = &cobra.Command{
		Use:          "history",
		Short:        "list recorded compiles",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			ledger, err := store.NewStore(ctx, dbPath)
			if err != nil {
				return err
			}
			defer ledger.Close()

			if showDBStats {
				stats, err := ledger.TableStats(ctx)
				if err != nil {
					return fmt.Errorf("get table stats: %w", err)
				}
				tables := make([]string, 0, len(stats))
				for table := range stats {
					tables = append(tables, table)
				}
				sort.Strings(tables)
				for _, table := range tables {
					fmt.Printf("%-20s %d rows\n", table, stats[table])
				}
			}

			list, err := ledger.ListCompiles(ctx, limit)
			if err != nil {
				return err
			}
			for _, c := range list {
				detail := fmt.Sprintf("%d rules, %d bytes", c.Rules, c.Bytes)
				if c.ErrorCode != "" {
					detail = c.ErrorCode + ": " + c.ErrorMsg
				}
				fmt.Printf("%s  batch %-4d %-7s %s -> %s  %s\n",
					c.CompiledAt.Local().Format(time.DateTime), c.BatchID, c.Status, c.SourcePath, c.OutputPath, detail)
			}
			return nil
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}

func cmdInitDB() *cobra.Command {
	var cmd = &cobra.Command{
		Use:          "init-db <path>",
		Short:        "create a new ledger database",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := store.InitDatabase(context.Background(), args[0]); err != nil {
				return err
			}
			log.Printf("%s: created ledger\n", args[0])
			return nil
		},
	}
	return cmd
}

func cmdVersion() *cobra.Command {
	showBuildInfo := false
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().BoolVar(&showBuildInfo, "build-info", showBuildInfo, "show build information")
		return nil
	}
	var cmd = &cobra.Command{
		Use:   "version",
		Short: "display the application's version number",
		RunE: func(cmd *cobra.Command, args []string) error {
			if showBuildInfo {
				fmt.Println(flatcss.Version().String())
				return nil
			}
			fmt.Println(flatcss.Version().Core())
			return nil
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}
