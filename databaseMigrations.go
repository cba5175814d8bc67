package main

import (
	"database/sql"
	"log"

	"github.com/lopezator/migrator"
)

func migrateDb(db *sql.DB, logging bool) error {
	var opts []migrator.Option
	if !logging {
		opts = append(opts, migrator.WithLogger(migrator.LoggerFunc(func(string, ...any) {})))
	}
	opts = append(opts, migrator.Migrations(
		&migrator.Migration{
			Name: "00001",
			Func: func(tx *sql.Tx) error {
				_, err := tx.Exec(`
				CREATE TABLE sellers (
					id integer primary key,
					slug text not null unique,
					store_name text not null,
					avatar_url text, banner_url text,
					phone text, email text, show_email boolean not null default false,
					address text,
					rating real not null default 0, rating_count integer not null default 0,
					featured boolean not null default false,
					hours_enabled boolean not null default false,
					open_notice text, close_notice text,
					store_hours text,
					social_profiles text,
					terms text,
					lat real, lng real,
					enabled boolean not null default true,
					registered text not null default (datetime('now'))
				);
				CREATE TABLE products (
					id integer primary key,
					seller_id integer not null,
					title text not null,
					price real not null default 0,
					image_url text,
					created text not null default (datetime('now'))
				);
				CREATE INDEX index_products_seller on products (seller_id);
				CREATE TABLE seller_orders (
					id integer primary key autoincrement,
					seller_id integer not null,
					created text not null default (datetime('now'))
				);
				CREATE INDEX index_orders_seller on seller_orders (seller_id);
				`)
				return err
			},
		},
	))
	m, err := migrator.New(opts...)
	if err != nil {
		return err
	}
	if err := m.Migrate(db); err != nil {
		return err
	}
	if logging {
		log.Println("Database migrated")
	}
	return nil
}
