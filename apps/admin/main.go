package main

import (
	"database/sql"
	"log"
	"os"

	"github.com/trezcool/selfcare/core"
	"github.com/trezcool/selfcare/core/exam"
	"github.com/trezcool/selfcare/services/logger"
	"github.com/trezcool/selfcare/services/notify"
	"github.com/trezcool/selfcare/storage/database"
)

var logger *logsvc.RollbarLogger

func main() {
	defer os.Exit(0)

	conf := core.NewConfig()
	logger = logsvc.NewRollbarLogger(
		log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	defer logger.Close()

	// set up storage
	var db *sql.DB
	if database.NeedsDB(conf) {
		var err error
		db, err = database.Open(conf)
		errAndDie(err)
		defer db.Close()
	}
	store, err := database.NewExamStore(conf, db)
	errAndDie(err)

	// start CLI
	cli := newCommandLine(db, exam.NewService(store, notifysvc.NewLogNotifier(logger)), os.Stdout)
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error("admin command failed: "+err.Error(), err)
		}
		logger.Close()
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err.Error(), err)
	}
}
