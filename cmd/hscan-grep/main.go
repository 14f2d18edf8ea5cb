package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/PhucNguyen204/hscan"
	"github.com/PhucNguyen204/hscan/patternfile"
	"github.com/PhucNguyen204/hscan/sink"
)

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	var patternsPath string
	flag.StringVar(&patternsPath, "patterns", getenv("HSCAN_PATTERNS", "patterns.yaml"), "YAML pattern set")
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		log.Fatalf("usage: hscan-grep [-patterns file.yaml] FILE...")
	}

	pats, err := patternfile.LoadFile(patternsPath)
	if err != nil {
		log.Fatalf("load patterns: %v", err)
	}
	db, err := hscan.NewBlockDatabase(pats...)
	if err != nil {
		log.Fatalf("compile: %v", err)
	}
	scratch, err := hscan.NewScratch(db)
	if err != nil {
		log.Fatalf("alloc scratch: %v", err)
	}
	defer scratch.Free()

	ctx := context.Background()

	// Optional Postgres sink
	var pg *sink.Postgres
	if dsn := os.Getenv("HSCAN_DB_DSN"); dsn != "" {
		conn, err := sink.Open(dsn)
		if err != nil {
			log.Fatalf("connect sink: %v", err)
		}
		defer conn.Close()
		pg = sink.NewPostgres(conn)
		if err := pg.InitSchema(ctx); err != nil {
			log.Fatalf("init sink schema: %v", err)
		}
	}

	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("read %s: %v", path, err)
		}

		var record hscan.MatchHandler
		if pg != nil {
			record = pg.Handler(ctx, path)
		}
		handler := func(id uint32, from, to uint64, flags uint32) bool {
			fmt.Printf("%s:%d-%d:%d\n", path, from, to, id)
			if record != nil {
				record(id, from, to, flags)
			}
			return true
		}
		if err := db.Scan(data, scratch, handler); err != nil {
			log.Fatalf("scan %s: %v", path, err)
		}
	}

	if pg != nil {
		if err := pg.Err(); err != nil {
			log.Printf("sink: %v", err)
		}
	}
}
