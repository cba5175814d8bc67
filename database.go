package main

import (
	"database/sql"
	"errors"
	"log"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

type database struct {
	db    *sql.DB
	stmts map[string]*sql.Stmt
	sm    sync.Mutex
	debug bool
}

func (a *storeBlocks) initDatabase(logging bool) (err error) {
	if logging {
		log.Println("Initialize database...")
	}
	a.db, err = a.openDatabase(a.cfg.Db.File, logging)
	if err != nil {
		return err
	}
	a.shutdown.Add(func() {
		if err := a.db.close(); err != nil {
			log.Println("Failed to close database:", err)
		} else if logging {
			log.Println("Closed database")
		}
	})
	if logging {
		log.Println("Initialized database")
	}
	return nil
}

func (a *storeBlocks) openDatabase(file string, logging bool) (*database, error) {
	db, err := sql.Open("sqlite3", file+"?cache=shared&mode=rwc&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}
	// Migrate
	if err = migrateDb(db, logging); err != nil {
		return nil, err
	}
	return &database{
		db:    db,
		stmts: map[string]*sql.Stmt{},
		debug: a.cfg.Db.Debug,
	}, nil
}

func (db *database) close() error {
	if db == nil || db.db == nil {
		return nil
	}
	return db.db.Close()
}

func (db *database) prepare(query string) (*sql.Stmt, error) {
	if db == nil {
		return nil, errors.New("database not initialized")
	}
	db.sm.Lock()
	defer db.sm.Unlock()
	if stmt, ok := db.stmts[query]; ok {
		return stmt, nil
	}
	stmt, err := db.db.Prepare(query)
	if err != nil {
		return nil, err
	}
	db.stmts[query] = stmt
	return stmt, nil
}

func (db *database) exec(query string, args ...any) (sql.Result, error) {
	if db.debug {
		log.Println("exec:", query)
	}
	stmt, err := db.prepare(query)
	if err != nil {
		return nil, err
	}
	return stmt.Exec(args...)
}

func (db *database) query(query string, args ...any) (*sql.Rows, error) {
	if db.debug {
		log.Println("query:", query)
	}
	stmt, err := db.prepare(query)
	if err != nil {
		return nil, err
	}
	return stmt.Query(args...)
}

func (db *database) queryRow(query string, args ...any) (*sql.Row, error) {
	if db.debug {
		log.Println("queryRow:", query)
	}
	stmt, err := db.prepare(query)
	if err != nil {
		return nil, err
	}
	return stmt.QueryRow(args...), nil
}

// Exported variants for the plugin database interface

func (db *database) Exec(query string, args ...any) (sql.Result, error) {
	return db.exec(query, args...)
}

func (db *database) Query(query string, args ...any) (*sql.Rows, error) {
	return db.query(query, args...)
}

func (db *database) QueryRow(query string, args ...any) (*sql.Row, error) {
	return db.queryRow(query, args...)
}
