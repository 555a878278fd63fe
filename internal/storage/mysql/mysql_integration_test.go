//go:build integration || !unit

package mysql_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"travel_atlas/internal/domain"
	"travel_atlas/internal/storage/docsql"
	mysqlstore "travel_atlas/internal/storage/mysql"
)

func TestStore_MySQL_BatchAndQuery(t *testing.T) {
	// Start isolated MySQL; let Docker pick a free host port.
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("dockertest: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker not reachable: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=atlas",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/atlas?charset=utf8mb4&loc=UTC", resource.GetPort("3306/tcp"))
	ctx := context.Background()

	var store *docsql.Store
	if err := pool.Retry(func() error {
		var e error
		store, e = mysqlstore.NewStore(ctx, dsn, 500*time.Millisecond)
		return e
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	city := domain.Root(domain.CitiesCollection, "cairo")
	attr := city.Child(domain.AttractionsCollection, "a1")

	b := store.BeginBatch()
	b.Set(city, domain.Fields{"name": "Cairo", "country": "Egypt"})
	b.Set(attr, domain.Fields{"name": "Al-Azhar Mosque", "type": "Mosque"})
	if err := b.Commit(ctx); err != nil {
		t.Fatalf("commit: %v", err)
	}

	up := store.BeginBatch()
	up.Update(attr, domain.Fields{"typeAr": "مسجد", "updatedAt": domain.ServerTimestamp})
	if err := up.Commit(ctx); err != nil {
		t.Fatalf("update: %v", err)
	}

	kids, err := store.ListChildren(ctx, city, domain.AttractionsCollection)
	if err != nil {
		t.Fatalf("ListChildren: %v", err)
	}
	if len(kids) != 1 || kids[0].Fields.Get("typeAr") != "مسجد" || kids[0].Fields.Get("name") != "Al-Azhar Mosque" {
		t.Fatalf("unexpected children: %+v", kids)
	}

	n, err := store.CountAcrossParents(ctx, domain.AttractionsCollection)
	if err != nil || n != 1 {
		t.Fatalf("CountAcrossParents = %d, %v", n, err)
	}
}
