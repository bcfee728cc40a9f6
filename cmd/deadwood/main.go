package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"deadwood/internal/config"
	"deadwood/internal/document"
	"deadwood/internal/inspect"
	"deadwood/internal/journal"
	"deadwood/internal/locator"
	"deadwood/internal/migrate"
	"deadwood/internal/remover"
	"deadwood/internal/template"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "deadwood",
		Short: "Structural removal of dead declarations from source files",
	}
	journalPath  string
	historyLimit int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&journalPath, "journal", "j", "", "Path to the removal journal database (SQLite)")

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of journal entries to show")

	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(templateCmd)
}

func loadConfig() *config.Config {
	cfg, err := config.LoadConfig("deadwood.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if journalPath != "" {
		cfg.Journal.Path = journalPath
	}
	return cfg
}

var removeCmd = &cobra.Command{
	Use:   "remove <file> <name>...",
	Short: "Remove named declarations (with attached doc comments) from a file",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		path := args[0]
		names := args[1:]
		cfg := loadConfig()

		doc, err := document.Load(path)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}

		profile := cfg.ProfileForFile(path)
		edited, report, err := remover.RemoveByName(doc, names, profile)
		if err != nil {
			log.Fatalf("Removal failed: %v", err)
		}

		for _, r := range report.Removed {
			fmt.Printf("✅ Found %s: lines %d-%d\n", r.Boundary.Name, r.Boundary.StartLine, r.Boundary.EndLine)
		}
		if len(report.NotFound) > 0 {
			candidates := locator.Candidates(doc, profile)
			for _, name := range report.NotFound {
				fmt.Printf("⚠️  Not found: %s%s\n", name, suggestion(name, candidates))
			}
		}

		if len(report.Removed) == 0 {
			fmt.Println("Nothing to remove.")
			return
		}

		recordRemovals(cfg.Journal.Path, path, report.Removed)

		if err := edited.Save(); err != nil {
			log.Fatalf("Failed to write %s: %v", path, err)
		}

		for _, r := range report.Removed {
			fmt.Printf("🗑️  Removed %s: lines %d-%d\n", r.Boundary.Name, r.Boundary.StartLine, r.Boundary.EndLine)
		}
		fmt.Printf("\n🎉 Done! Removed %d declarations.\n", len(report.Removed))
		fmt.Printf("📝 Lines: %d → %d\n", report.Before, report.After)
	},
}

// suggestion formats a "did you mean" hint from fuzzy-ranked candidates.
func suggestion(name string, candidates []string) string {
	ranks := fuzzy.RankFindFold(name, candidates)
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	top := ranks
	if len(top) > 3 {
		top = top[:3]
	}
	var names []string
	for _, r := range top {
		names = append(names, r.Target)
	}
	return fmt.Sprintf(" (did you mean %s?)", strings.Join(names, ", "))
}

func recordRemovals(dbPath, file string, removals []remover.Removal) {
	j, err := journal.Open(dbPath)
	if err != nil {
		log.Printf("⚠️  Journal unavailable, removals not recorded: %v", err)
		return
	}
	defer j.Close()

	ctx := context.Background()
	for _, r := range removals {
		if err := j.Record(ctx, file, r); err != nil {
			log.Printf("⚠️  %v", err)
		}
	}
}

var listCmd = &cobra.Command{
	Use:   "list <file>",
	Short: "List function-like declarations in a file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := args[0]

		decls, err := inspect.ListFile(path)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}

		if len(decls) == 0 {
			fmt.Println("No declarations found.")
			return
		}

		fmt.Printf("📂 %s: %d declarations\n", path, len(decls))
		for _, d := range decls {
			fmt.Printf("  %-8s %-40s lines %d-%d\n", d.Kind, d.Name, d.StartLine, d.EndLine)
		}
	},
}

var historyCmd = &cobra.Command{
	Use:   "history [file]",
	Short: "Show recently journaled removals",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		file := ""
		if len(args) > 0 {
			file = args[0]
		}

		j, err := journal.Open(cfg.Journal.Path)
		if err != nil {
			log.Fatalf("Failed to open journal: %v", err)
		}
		defer j.Close()

		entries, err := j.Recent(context.Background(), file, historyLimit)
		if err != nil {
			log.Fatalf("Failed to read journal: %v", err)
		}

		if len(entries) == 0 {
			fmt.Println("No journaled removals.")
			return
		}

		for _, e := range entries {
			fmt.Printf("🗑️  %s  %s (lines %d-%d)  %s\n",
				e.RemovedAt.Format("2006-01-02 15:04"), e.Name, e.StartLine, e.EndLine, e.Filepath)
		}
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate <file> <tag>",
	Short: "Rewrite tagged console calls to a module-tagged logger",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		path, tag := args[0], args[1]

		fmt.Printf("🔧 Migrating file: %s\n", path)
		fmt.Printf("📝 Module tag: %s\n", tag)

		res, err := migrate.File(path, tag)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}

		fmt.Printf("✅ Replaced: %d calls\n", res.Replaced)
		fmt.Printf("   Remaining console calls: %d\n", res.Remaining)
		if res.Remaining > 0 {
			fmt.Println("\n⚠️  Remaining console calls need manual attention")
		}
	},
}

var templateCmd = &cobra.Command{
	Use:   "template <json-file> <key> <content-file>",
	Short: "Replace a template value in a JSON file with a file's contents",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		path, key, contentPath := args[0], args[1], args[2]

		content, err := os.ReadFile(contentPath)
		if err != nil {
			log.Fatalf("❌ Failed to read replacement content: %v", err)
		}

		if err := template.ReplaceValue(path, key, string(content)); err != nil {
			log.Fatalf("❌ %v", err)
		}

		fmt.Printf("✅ Template updated: %s\n", key)
		fmt.Printf("New value length: %d characters\n", len(content))
	},
}
