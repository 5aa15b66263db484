//go:build integration || !unit

package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"

	server "house_explorer/internal/adapters/http_server"
	redisad "house_explorer/internal/adapters/redis"
	"house_explorer/internal/app"
	"house_explorer/internal/domain"
	mysqlrepo "house_explorer/internal/storage/mysql"
	"house_explorer/internal/storage/seed"
)

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := os.Getenv("MIGRATIONS_DIR")
	if dir == "" {
		dir = filepath.Join("..", "..", "migrations")
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir %s: %v", dir, err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)
	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("dockertest unavailable: %v", err)
	}
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=houses",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Skipf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/houses?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		resource.GetPort("3306/tcp"))

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return db
}

// The API served from MySQL with a redis cache in front: seed through the
// ingestion path, read a listing, submit a review, and read again.
func TestHTTP_EndToEnd_ReviewRoundTrip(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	mr := miniredis.RunT(t)
	cache := redisad.NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	listings, err := seed.Listings()
	if err != nil {
		t.Fatalf("seed listings: %v", err)
	}
	reviews, err := seed.Reviews()
	if err != nil {
		t.Fatalf("seed reviews: %v", err)
	}
	ing := app.NewIngestionService(nil, repo, cache)
	for _, l := range listings {
		var rs []domain.Review
		for _, r := range reviews {
			if r.ListingID == l.ID {
				rs = append(rs, r)
			}
		}
		if err := ing.LoadSeed(ctx, l, rs); err != nil {
			t.Fatalf("LoadSeed %s: %v", l.ID, err)
		}
	}

	srv := server.New(0, false)
	srv.MountHandlers(&server.Handlers{
		Catalog: app.NewCatalog(repo, repo, cache, 0),
		Reviews: app.NewReviewService(repo, repo, cache, 0),
	}, nil)
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	detail := func() domain.ListingDetail {
		t.Helper()
		res, err := http.Get(ts.URL + "/v1/listings/1")
		if err != nil {
			t.Fatalf("GET: %v", err)
		}
		defer res.Body.Close()
		if res.StatusCode != http.StatusOK {
			t.Fatalf("status %d", res.StatusCode)
		}
		var d domain.ListingDetail
		if err := json.NewDecoder(res.Body).Decode(&d); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return d
	}

	d := detail()
	if d.Summary.Count != 3 || d.Summary.Average != 4.5 || d.Listing.ReviewCount != 3 {
		t.Fatalf("unexpected summary: %+v", d.Summary)
	}
	if !mr.Exists("houses:listing:1") {
		t.Fatalf("detail was not cached")
	}

	res, err := http.Post(ts.URL+"/v1/listings/1/reviews", "application/json",
		strings.NewReader(`{"userId":"u7","username":"Robin","rating":2,"comment":"Too much glass"}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("POST status %d", res.StatusCode)
	}
	if mr.Exists("houses:listing:1") {
		t.Fatalf("detail cache not invalidated")
	}

	d = detail()
	if d.Summary.Count != 4 || d.Summary.Average != 15.5/4 || d.Summary.Distribution[3] != 1 {
		t.Fatalf("summary after submit: %+v", d.Summary)
	}

	res, err = http.Get(ts.URL + "/v1/listings/404")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("missing listing status %d", res.StatusCode)
	}
}
