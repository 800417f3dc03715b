package main

import (
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"go-store-console/internal/model"
	"go-store-console/internal/repository"
	"go-store-console/internal/service"
	"go-store-console/internal/view"
	"go-store-console/pkg/config"
	"go-store-console/pkg/database"
	"go-store-console/pkg/logger"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	limit := pflag.IntP("limit", "n", 20, "number of entries to show")
	days := pflag.IntP("days", "d", 7, "days covered by the summary")
	sessionFlag := pflag.StringP("session", "s", "", "only entries of this console session")
	pflag.Parse()

	// 1. Load Env
	cfg, envLoaded, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if !envLoaded {
		log.Println("Warning: .env file not found, relying on system env")
	}
	if !cfg.JournalEnabled() {
		log.Fatal("no database configured: set DATABASE_URL or DB_HOST")
	}

	zlog, err := logger.New("warn", cfg.AppEnv)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()

	// 2. Setup Database
	db, err := database.ConnectDB(cfg.DatabaseDSN, zlog)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	activity := service.NewActivityService(repository.NewActivityRepo(db))

	// 3. Entries
	var entries []model.ActivityEntry
	if *sessionFlag != "" {
		sessionID, perr := uuid.Parse(*sessionFlag)
		if perr != nil {
			log.Fatalf("invalid session id %q: %v", *sessionFlag, perr)
		}
		entries, err = activity.ForSession(sessionID, *limit)
	} else {
		entries, err = activity.Recent(*limit)
	}
	if err != nil {
		zlog.Fatal("failed to read journal", zap.Error(err))
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tACTOR\tACTION\tDETAIL\tAMOUNT")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.CreatedAt.Local().Format(time.DateTime), e.Actor, e.Action, e.Detail, view.Money(e.Amount))
	}
	w.Flush()

	// 4. Summary
	summary, err := activity.Summary(*days)
	if err != nil {
		zlog.Fatal("failed to summarize journal", zap.Error(err))
	}
	fmt.Printf("\nLast %d days\n", *days)
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, s := range summary {
		fmt.Fprintf(w, "%s\t%d\t%s\n", s.Action, s.Count, view.Money(s.Amount))
	}
	w.Flush()
}
