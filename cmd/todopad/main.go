package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"todopad/internal/config"
	"todopad/internal/store"
	"todopad/internal/task"
	"todopad/internal/tui"
	"todopad/internal/version"
)

func main() {
	// Flags
	var (
		cfgPath     string
		dbPath      string
		hooksDir    string
		themeFlag   string
		addArg      string
		listOnly    bool
		exportArg   string
		importArg   string
		debug       bool
		showVersion bool
	)

	flag.StringVar(&cfgPath, "config", filepath.Join(config.UserHome(), ".config", "todopad.json"), "config file path")
	flag.StringVar(&dbPath, "db", "", "task database path (overrides config)")
	flag.StringVar(&hooksDir, "hooks-dir", "", "directory containing JS hook files")
	flag.StringVar(&themeFlag, "theme", "", "initial theme: dark | light")
	flag.StringVar(&addArg, "add", "", "add a task and exit")
	flag.BoolVar(&listOnly, "list", false, "print tasks and exit")
	flag.StringVar(&exportArg, "export", "", "batch export: write the task list as JSON to <path>")
	flag.StringVar(&importArg, "import", "", "batch import: replace the task list from JSON at <path>")
	flag.BoolVar(&debug, "debug", false, "print debug info")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Println(version.String())
		return
	}

	// Load config
	cfg := config.Default()
	if err := config.Load(cfgPath, &cfg); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: failed to load config: %v", err)
	}
	// Merge overrides
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if hooksDir != "" {
		cfg.HooksDir = hooksDir
	}
	if themeFlag != "" {
		cfg.Theme = themeFlag
	}
	if debug {
		cfg.Debug = true
	}
	if cfg.DBPath == "" {
		cfg.DBPath = store.DefaultPath()
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("open task store: %v", err)
	}
	defer st.Close()

	// Batch operations
	if addArg != "" {
		name := task.CleanName(addArg)
		if name == "" {
			log.Fatalf("task name is empty after trimming")
		}
		list, err := st.Load()
		if err != nil {
			log.Fatalf("load tasks: %v", err)
		}
		t := task.New(name)
		list = append(list, t)
		if err := st.Save(list); err != nil {
			log.Fatalf("save tasks: %v", err)
		}
		fmt.Printf("added %s\t%s\n", t.ID, t.Name)
		return
	}

	if exportArg != "" {
		if err := batchExport(st, exportArg); err != nil {
			log.Fatalf("export failed: %v", err)
		}
		fmt.Printf("exported tasks to %s\n", exportArg)
		return
	}

	if importArg != "" {
		n, err := batchImport(st, importArg)
		if err != nil {
			log.Fatalf("import failed: %v", err)
		}
		fmt.Printf("imported %d tasks from %s\n", n, importArg)
		return
	}

	if listOnly || !(term.IsTerminal(int(os.Stdin.Fd())) || term.IsTerminal(int(os.Stdout.Fd()))) {
		list, err := st.Load()
		if err != nil {
			log.Fatalf("load tasks: %v", err)
		}
		fmt.Printf("%d tasks\n", len(list))
		for _, t := range list {
			mark := " "
			if t.Complete {
				mark = "x"
			}
			fmt.Printf("[%s] %s\t%s\n", mark, t.ID, t.Name)
		}
		return
	}

	p := tea.NewProgram(tui.New(cfg, st))
	if _, err := p.Run(); err != nil {
		log.Fatalf("tui error: %v", err)
	}
}

func batchExport(st *store.Store, path string) error {
	list, err := st.Load()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// batchImport replaces the slot contents after validating the file and
// backing up the current database.
func batchImport(st *store.Store, path string) (int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	list, err := task.DecodeList(b)
	if err != nil {
		return 0, err
	}
	if bak, err := st.BackupSlot(); err != nil {
		log.Printf("warning: backup before import failed: %v", err)
	} else if bak != "" {
		log.Printf("backed up previous data to %s", bak)
	}
	if err := st.Save(list); err != nil {
		return 0, err
	}
	return len(list), nil
}
